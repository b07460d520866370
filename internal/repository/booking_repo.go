package repository

import (
	"context"
	"time"

	"shesafe/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// BookingDetails is a booking joined with the names shown on receipts and listings.
// VendorName is empty when the vendor has since been removed.
type BookingDetails struct {
	domain.Booking
	UserName   string `json:"user_name"`
	VendorName string `json:"vendor_name"`
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) detailsQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("bookings").
		Select("bookings.*, users.name AS user_name, COALESCE(vendors.business_name, '') AS vendor_name").
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("LEFT JOIN vendors ON vendors.id = bookings.vendor_id")
}

func (r *BookingRepository) GetDetails(ctx context.Context, id int64) (*BookingDetails, error) {
	var d BookingDetails
	err := r.detailsQuery(ctx).
		Where("bookings.id = ?", id).
		Take(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]BookingDetails, error) {
	var out []BookingDetails
	err := r.detailsQuery(ctx).
		Where("bookings.user_id = ?", userID).
		Order("bookings.booking_time DESC, bookings.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&out).Error
	return out, err
}

func (r *BookingRepository) ListByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]BookingDetails, error) {
	var out []BookingDetails
	err := r.detailsQuery(ctx).
		Where("bookings.vendor_id = ?", vendorID).
		Order("bookings.visit_date ASC, bookings.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&out).Error
	return out, err
}

func (r *BookingRepository) ListAll(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]BookingDetails, int64, error) {
	var (
		out   []BookingDetails
		total int64
	)

	count := r.db.WithContext(ctx).Model(&domain.Booking{})
	q := r.detailsQuery(ctx)
	if status != "" {
		count = count.Where("status = ?", status)
		q = q.Where("bookings.status = ?", status)
	}
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("bookings.booking_time DESC, bookings.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&out).Error
	return out, total, err
}

func (r *BookingRepository) ExistsPending(ctx context.Context, userID, vendorID int64, visitDate time.Time) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("user_id = ? AND vendor_id = ? AND visit_date = ? AND status = ?",
			userID, vendorID, visitDate, domain.BookingPending).
		Count(&cnt).Error
	return cnt > 0, err
}

// UpdateStatus moves a booking from one status to another. It reports false when the
// booking was no longer in the expected status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return tx.RowsAffected > 0, tx.Error
}

func (r *BookingRepository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	var rows []struct {
		Status domain.BookingStatus
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[domain.BookingStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}
