package admin

import (
	"shesafe/internal/domain"
	"shesafe/internal/repository"
)

// VendorRow is a vendor as the moderation queue shows it.
type VendorRow struct {
	domain.Vendor
	State string `json:"state"`
}

func stateOf(v *domain.Vendor) string {
	switch {
	case !v.IsVerified:
		return repository.VendorStatePending
	case v.IsActive:
		return repository.VendorStateActive
	default:
		return repository.VendorStateDisabled
	}
}

// DecisionResponse reports the vendor after a moderation action and whether anything changed.
type DecisionResponse struct {
	VendorID int64  `json:"vendor_id"`
	State    string `json:"state"`
	Changed  bool   `json:"changed"`
}

type StatsResponse struct {
	TotalUsers       int64                          `json:"total_users"`
	UsersByRole      map[domain.UserRole]int64      `json:"users_by_role"`
	Vendors          repository.VendorCounts        `json:"vendors"`
	TotalBookings    int64                          `json:"total_bookings"`
	BookingsByStatus map[domain.BookingStatus]int64 `json:"bookings_by_status"`
	TotalFeedback    int64                          `json:"total_feedback"`
}
