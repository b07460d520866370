package notification

import (
	"shesafe/internal/domain"
	"shesafe/internal/pkg/logger"
)

// Notifier turns domain events into hub messages. Delivery is best effort: offline users
// simply miss the event.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) toUser(userID int64, ev Event) {
	if userID <= 0 {
		return
	}
	if n.hub.SendToUser(userID, ev) {
		logger.Debug("notification delivered", "type", ev.Type, "user_id", userID)
	}
}

func vendorData(v *domain.Vendor) map[string]any {
	return map[string]any{
		"vendor_id":     v.ID,
		"business_name": v.BusinessName,
	}
}

func bookingData(b *domain.Booking) map[string]any {
	return map[string]any{
		"booking_id": b.ID,
		"vendor_id":  b.VendorID,
		"user_id":    b.UserID,
		"status":     b.Status,
		"visit_date": b.VisitDate,
	}
}

func (n *Notifier) VendorOnboarded(v *domain.Vendor) {
	n.hub.SendToRole(domain.RoleAdmin, newEvent(TypeVendorOnboarded, vendorData(v)))
}

func (n *Notifier) VendorApproved(v *domain.Vendor) {
	n.toUser(v.UserID, newEvent(TypeVendorApproved, vendorData(v)))
}

func (n *Notifier) VendorRejected(v *domain.Vendor) {
	n.toUser(v.UserID, newEvent(TypeVendorRejected, vendorData(v)))
}

func (n *Notifier) VendorDisabled(v *domain.Vendor) {
	n.toUser(v.UserID, newEvent(TypeVendorDisabled, vendorData(v)))
}

func (n *Notifier) BookingCreated(b *domain.Booking, vendorOwnerID int64) {
	n.toUser(vendorOwnerID, newEvent(TypeBookingCreated, bookingData(b)))
}

func (n *Notifier) BookingStatusChanged(b *domain.Booking, vendorOwnerID int64) {
	ev := newEvent(TypeBookingStatusChanged, bookingData(b))
	n.toUser(b.UserID, ev)
	n.toUser(vendorOwnerID, ev)
}

func (n *Notifier) FeedbackReceived(f *domain.Feedback, vendorOwnerID int64) {
	n.toUser(vendorOwnerID, newEvent(TypeFeedbackReceived, map[string]any{
		"booking_id":     f.BookingID,
		"vendor_id":      f.VendorID,
		"overall_rating": f.OverallRating,
	}))
}
