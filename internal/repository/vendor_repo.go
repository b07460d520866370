package repository

import (
	"context"
	"strings"

	"shesafe/internal/domain"

	"gorm.io/gorm"
)

// Vendor admin states, derived from the two flags.
const (
	VendorStatePending  = "pending"
	VendorStateActive   = "active"
	VendorStateDisabled = "disabled"
)

type VendorFilters struct {
	Category    string
	CCTV        *bool
	FemaleStaff *bool
	Query       string
	Limit       int
	Offset      int
}

type VendorCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Active   int64 `json:"active"`
	Disabled int64 `json:"disabled"`
}

type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// Discoverable restricts a query to vendors the public may see.
func Discoverable(db *gorm.DB) *gorm.DB {
	return db.Where("vendors.is_verified = ? AND vendors.is_active = ?", true, true)
}

func byState(state string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch state {
		case VendorStatePending:
			return db.Where("vendors.is_verified = ?", false)
		case VendorStateActive:
			return Discoverable(db)
		case VendorStateDisabled:
			return db.Where("vendors.is_verified = ? AND vendors.is_active = ?", true, false)
		default:
			return db
		}
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes user input match literally inside a LIKE pattern using ESCAPE '\'.
func escapeLike(s string) string { return likeEscaper.Replace(s) }

func imagesByInsertion(db *gorm.DB) *gorm.DB {
	return db.Order("vendor_images.id ASC")
}

// CreateWithImages inserts the vendor and its images atomically.
func (r *VendorRepository) CreateWithImages(ctx context.Context, v *domain.Vendor, imageURLs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v.Images = nil
		if err := tx.Create(v).Error; err != nil {
			return err
		}

		images := make([]domain.VendorImage, 0, len(imageURLs))
		for _, u := range imageURLs {
			images = append(images, domain.VendorImage{VendorID: v.ID, ImageURL: u})
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		v.Images = images
		return nil
	})
}

func (r *VendorRepository) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	var v domain.Vendor
	err := r.db.WithContext(ctx).
		Preload("Images", imagesByInsertion).
		First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Vendor, error) {
	var v domain.Vendor
	err := r.db.WithContext(ctx).
		Preload("Images", imagesByInsertion).
		Where("user_id = ?", userID).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepository) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Vendor{}).
		Where("user_id = ?", userID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *VendorRepository) GetDiscoverable(ctx context.Context, id int64) (*domain.Vendor, error) {
	var v domain.Vendor
	err := r.db.WithContext(ctx).
		Scopes(Discoverable).
		Preload("Images", imagesByInsertion).
		First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListDiscoverable returns public vendors matching f. A zero Limit returns every match.
func (r *VendorRepository) ListDiscoverable(ctx context.Context, f VendorFilters) ([]domain.Vendor, int64, error) {
	var (
		vendors []domain.Vendor
		total   int64
	)

	q := r.db.WithContext(ctx).
		Model(&domain.Vendor{}).
		Scopes(Discoverable)

	if c := strings.ToLower(strings.TrimSpace(f.Category)); c != "" {
		q = q.Where(`(',' || LOWER(vendors.category) || ',') LIKE ? ESCAPE '\'`, "%,"+escapeLike(c)+",%")
	}
	if f.CCTV != nil {
		q = q.Where("vendors.has_cctv = ?", *f.CCTV)
	}
	if f.FemaleStaff != nil {
		q = q.Where("vendors.has_female_staff = ?", *f.FemaleStaff)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Query)); s != "" {
		like := "%" + escapeLike(s) + "%"
		q = q.Where(`(LOWER(vendors.business_name) LIKE ? ESCAPE '\' OR LOWER(vendors.address) LIKE ? ESCAPE '\')`, like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Preload("Images", imagesByInsertion).
		Order("vendors.average_rating DESC, vendors.id ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	err := q.Find(&vendors).Error
	return vendors, total, err
}

// ListByState is the admin listing; state is one of the VendorState constants or empty for all.
func (r *VendorRepository) ListByState(ctx context.Context, state string, limit, offset int) ([]domain.Vendor, int64, error) {
	var (
		vendors []domain.Vendor
		total   int64
	)

	q := r.db.WithContext(ctx).
		Model(&domain.Vendor{}).
		Scopes(byState(state))

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Images", imagesByInsertion).
		Order("vendors.created_at DESC, vendors.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&vendors).Error
	return vendors, total, err
}

// Approve sets both flags and reports whether the row changed.
func (r *VendorRepository) Approve(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Vendor{}).
		Where("id = ? AND (is_verified = ? OR is_active = ?)", id, false, false).
		Updates(map[string]any{"is_verified": true, "is_active": true})
	return tx.RowsAffected > 0, tx.Error
}

func (r *VendorRepository) Disable(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Vendor{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return tx.RowsAffected > 0, tx.Error
}

// DeleteWithImages removes the vendor and its image rows in one transaction.
// Bookings that reference the vendor are left in place.
func (r *VendorRepository) DeleteWithImages(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vendor_id = ?", id).Delete(&domain.VendorImage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Vendor{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// UpdateProfile writes the descriptive columns only; verification flags and ratings are never touched.
func (r *VendorRepository) UpdateProfile(ctx context.Context, v *domain.Vendor) error {
	return r.db.WithContext(ctx).
		Model(v).
		Select(
			"business_name", "description", "address", "latitude", "longitude", "category",
			"has_cctv", "has_female_staff", "female_staff_start", "female_staff_end", "thumbnail_url",
		).
		Updates(v).Error
}

func (r *VendorRepository) Counts(ctx context.Context) (VendorCounts, error) {
	var c VendorCounts
	db := r.db.WithContext(ctx)

	if err := db.Model(&domain.Vendor{}).Count(&c.Total).Error; err != nil {
		return c, err
	}
	if err := db.Model(&domain.Vendor{}).Scopes(byState(VendorStatePending)).Count(&c.Pending).Error; err != nil {
		return c, err
	}
	if err := db.Model(&domain.Vendor{}).Scopes(byState(VendorStateActive)).Count(&c.Active).Error; err != nil {
		return c, err
	}
	if err := db.Model(&domain.Vendor{}).Scopes(byState(VendorStateDisabled)).Count(&c.Disabled).Error; err != nil {
		return c, err
	}
	return c, nil
}

// MediaURLs lists every image and thumbnail URL still referenced by a vendor.
func (r *VendorRepository) MediaURLs(ctx context.Context) ([]string, error) {
	var images, thumbs []string
	db := r.db.WithContext(ctx)

	if err := db.Model(&domain.VendorImage{}).Distinct().Pluck("image_url", &images).Error; err != nil {
		return nil, err
	}
	err := db.Model(&domain.Vendor{}).
		Where("thumbnail_url IS NOT NULL AND thumbnail_url <> ''").
		Distinct().
		Pluck("thumbnail_url", &thumbs).Error
	if err != nil {
		return nil, err
	}
	return append(images, thumbs...), nil
}
