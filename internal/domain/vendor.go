package domain

import (
	"strings"
	"time"
)

const PlaceholderImageURL = "/static/img/placeholder-vendor.png"

// KnownCategories are offered by the onboarding form; vendors may still submit others.
var KnownCategories = []string{
	"Washroom",
	"Restaurant",
	"Rest Stop",
	"Cafe",
	"Petrol Pump",
	"Hospital",
	"Mall",
}

type Vendor struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	UserID           int64     `json:"user_id" gorm:"uniqueIndex;not null"`
	BusinessName     string    `json:"business_name" gorm:"size:200;not null"`
	Description      string    `json:"description,omitempty" gorm:"type:text"`
	Address          string    `json:"address" gorm:"size:500;not null"`
	Latitude         float64   `json:"latitude" gorm:"not null"`
	Longitude        float64   `json:"longitude" gorm:"not null"`
	Category         string    `json:"category" gorm:"size:255;not null;default:Washroom"`
	HasCCTV          bool      `json:"has_cctv" gorm:"not null;default:false"`
	HasFemaleStaff   bool      `json:"has_female_staff" gorm:"not null;default:false"`
	FemaleStaffStart *string   `json:"female_staff_start,omitempty" gorm:"size:5"`
	FemaleStaffEnd   *string   `json:"female_staff_end,omitempty" gorm:"size:5"`
	IsVerified       bool      `json:"is_verified" gorm:"not null;default:false;index:idx_vendors_discoverable,priority:1"`
	IsActive         bool      `json:"is_active" gorm:"not null;default:false;index:idx_vendors_discoverable,priority:2"`
	AverageRating    float64   `json:"average_rating" gorm:"not null;default:0"`
	RatingSum        float64   `json:"-" gorm:"not null;default:0"`
	ReviewCount      int64     `json:"review_count" gorm:"not null;default:0"`
	ThumbnailURL     *string   `json:"thumbnail_url,omitempty" gorm:"size:255"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Images []VendorImage `json:"images,omitempty" gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
}

func (Vendor) TableName() string { return "vendors" }

// Discoverable is the public-visibility predicate.
func (v *Vendor) Discoverable() bool {
	return v.IsVerified && v.IsActive
}

func (v *Vendor) Categories() []string {
	return SplitCategories(v.Category)
}

// DisplayImageURL prefers the thumbnail override, then the first image, then a placeholder.
func (v *Vendor) DisplayImageURL() string {
	if v.ThumbnailURL != nil && strings.TrimSpace(*v.ThumbnailURL) != "" {
		return *v.ThumbnailURL
	}
	for _, img := range v.Images {
		if strings.TrimSpace(img.ImageURL) != "" {
			return img.ImageURL
		}
	}
	return PlaceholderImageURL
}

// VendorImage references a stored blob (or an external URL for seeded rows).
type VendorImage struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	VendorID  int64     `json:"vendor_id" gorm:"index;not null"`
	ImageURL  string    `json:"image_url" gorm:"size:500;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (VendorImage) TableName() string { return "vendor_images" }

// JoinCategories normalises a multi-select into the stored comma-joined form:
// trimmed, empty entries dropped, duplicates (case-insensitive) removed, order kept.
func JoinCategories(in []string) string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		for _, part := range strings.Split(c, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			key := strings.ToLower(part)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, part)
		}
	}
	return strings.Join(out, ",")
}

func SplitCategories(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
