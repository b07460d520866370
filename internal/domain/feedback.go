package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Feedback struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	BookingID     int64     `json:"booking_id" gorm:"uniqueIndex;not null"`
	VendorID      int64     `json:"vendor_id" gorm:"index;not null"`
	UserID        int64     `json:"user_id" gorm:"index;not null"`
	Hygiene       int       `json:"hygiene" gorm:"not null"`
	Safety        int       `json:"safety" gorm:"not null"`
	StaffBehavior int       `json:"staff_behavior" gorm:"not null"`
	OverallRating float64   `json:"overall_rating" gorm:"not null"`
	Comments      string    `json:"comments,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Feedback) TableName() string { return "feedbacks" }

// ComputeOverall is the unweighted mean of the three category scores.
func ComputeOverall(hygiene, safety, staffBehavior int) float64 {
	return float64(hygiene+safety+staffBehavior) / 3.0
}
