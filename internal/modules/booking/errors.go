package booking

import "shesafe/internal/pkg/apperror"

var (
	ErrInvalidVisitDate   = apperror.Validation("INVALID_VISIT_DATE", "Visit date must be YYYY-MM-DDTHH:MM")
	ErrInvalidPaymentMode = apperror.Validation("INVALID_PAYMENT_MODE", "Payment mode must be app or pay_at_location")
	ErrInvalidAmount      = apperror.Validation("INVALID_AMOUNT", "Amount must not be negative")
	ErrVendorUnavailable  = apperror.NotFound("VENDOR_NOT_FOUND", "Vendor not found")
	ErrBookingNotFound    = apperror.NotFound("BOOKING_NOT_FOUND", "Booking not found")
	ErrDuplicateBooking   = apperror.Conflict("DUPLICATE_BOOKING", "You already have a pending booking for this visit")
	ErrInvalidTransition  = apperror.Conflict("INVALID_STATUS_TRANSITION", "Booking cannot move to that status")
	ErrStatusChanged      = apperror.Conflict("BOOKING_STATUS_CHANGED", "Booking status changed, reload and retry")
)

var ErrNotOnboarded = apperror.NotFound("VENDOR_NOT_ONBOARDED", "Complete onboarding first")
