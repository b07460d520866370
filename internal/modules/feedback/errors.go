package feedback

import "shesafe/internal/pkg/apperror"

var (
	ErrInvalidRating       = apperror.Validation("INVALID_RATING", "Ratings must be whole numbers from 1 to 5")
	ErrBookingNotFound     = apperror.NotFound("BOOKING_NOT_FOUND", "Booking not found")
	ErrBookingNotCompleted = apperror.Conflict("BOOKING_NOT_COMPLETED", "Feedback can only be left for completed visits")
	ErrAlreadySubmitted    = apperror.Conflict("FEEDBACK_EXISTS", "Feedback already submitted for this booking")
	ErrVendorNotFound      = apperror.NotFound("VENDOR_NOT_FOUND", "Vendor not found")
)
