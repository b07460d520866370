package booking

import (
	"time"

	"shesafe/internal/repository"
)

const visitDateLayout = "2006-01-02T15:04"

var visitDateLayouts = []string{visitDateLayout, "2006-01-02T15:04:05", time.RFC3339}

type CreateBookingRequest struct {
	VendorID    int64   `json:"vendor_id" binding:"required"`
	VisitDate   string  `json:"visit_date" binding:"required"`
	PaymentMode string  `json:"payment_mode"`
	Amount      float64 `json:"amount"`
}

type BookingDetails = repository.BookingDetails

// ParseVisitDate accepts "2006-01-02T15:04" (the datetime-local form value) and RFC 3339.
// Times without a zone are taken as UTC.
func ParseVisitDate(s string) (time.Time, error) {
	for _, layout := range visitDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidVisitDate
}
