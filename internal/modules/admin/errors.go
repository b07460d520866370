package admin

import "shesafe/internal/pkg/apperror"

var (
	ErrVendorNotFound = apperror.NotFound("VENDOR_NOT_FOUND", "Vendor not found")
	ErrInvalidState   = apperror.Validation("INVALID_STATE", "state must be pending, active or disabled")
	ErrInvalidRole    = apperror.Validation("INVALID_ROLE", "role must be user, vendor or admin")
	ErrInvalidStatus  = apperror.Validation("INVALID_STATUS", "Unknown booking status")
)
