package notification

import "time"

const (
	TypeVendorOnboarded      = "vendor.onboarded"
	TypeVendorApproved       = "vendor.approved"
	TypeVendorRejected       = "vendor.rejected"
	TypeVendorDisabled       = "vendor.disabled"
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"
	TypeFeedbackReceived     = "feedback.received"
)

// Event is the JSON frame pushed to websocket clients.
type Event struct {
	Type      string         `json:"type"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

func newEvent(typ string, data map[string]any) Event {
	return Event{Type: typ, Data: data, CreatedAt: time.Now().UTC()}
}
