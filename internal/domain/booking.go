package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

type PaymentMode string

const (
	PaymentApp           PaymentMode = "app"
	PaymentPayAtLocation PaymentMode = "pay_at_location"
)

func (m PaymentMode) Valid() bool {
	return m == PaymentApp || m == PaymentPayAtLocation
}

// Booking is a reservation of a visit slot. VendorID is deliberately not a foreign key:
// bookings outlive a rejected vendor.
type Booking struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	UserID      int64         `json:"user_id" gorm:"index;not null"`
	VendorID    int64         `json:"vendor_id" gorm:"index;not null"`
	BookingTime time.Time     `json:"booking_time" gorm:"not null"`
	VisitDate   time.Time     `json:"visit_date" gorm:"not null"`
	PaymentMode PaymentMode   `json:"payment_mode" gorm:"size:30;not null"`
	Amount      float64       `json:"amount" gorm:"not null;default:0"`
	Status      BookingStatus `json:"status" gorm:"size:20;not null;default:pending;index"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }
