// Package access decides who may act on a booking, a feedback slot or a vendor profile.
// Every check takes the acting identity explicitly and reports the relationship that
// granted access.
package access

import (
	"shesafe/internal/domain"
	"shesafe/internal/pkg/apperror"
)

type Level int

const (
	LevelPublic Level = iota
	LevelOwner
	LevelVendor
	LevelAdmin
)

func (l Level) String() string {
	switch l {
	case LevelOwner:
		return "owner"
	case LevelVendor:
		return "vendor"
	case LevelAdmin:
		return "admin"
	default:
		return "public"
	}
}

var (
	ErrUnauthenticated = apperror.New(apperror.KindUnauthenticated, "UNAUTHORIZED", "Authentication required")
	ErrForbidden       = apperror.Forbidden("FORBIDDEN", "You do not have access to this resource")
)

// Actor is the authenticated caller.
type Actor struct {
	UserID int64
	Role   domain.UserRole
}

func (a Actor) Authenticated() bool { return a.UserID > 0 && a.Role.Valid() }

func (a Actor) Is(role domain.UserRole) bool { return a.Authenticated() && a.Role == role }

// RequireRole passes when the actor holds one of roles.
func RequireRole(a Actor, roles ...domain.UserRole) error {
	if !a.Authenticated() {
		return ErrUnauthenticated
	}
	for _, r := range roles {
		if a.Role == r {
			return nil
		}
	}
	return ErrForbidden
}

// ownsVendor is true for the vendor account behind vendorOwnerID. A zero owner (vendor
// removed) matches nobody.
func ownsVendor(a Actor, vendorOwnerID int64) bool {
	return vendorOwnerID > 0 && a.Is(domain.RoleVendor) && a.UserID == vendorOwnerID
}

// CanViewBooking: the booking's user, the vendor it was made with, or any admin.
func CanViewBooking(a Actor, b *domain.Booking, vendorOwnerID int64) (Level, error) {
	if !a.Authenticated() {
		return LevelPublic, ErrUnauthenticated
	}
	switch {
	case a.Role == domain.RoleAdmin:
		return LevelAdmin, nil
	case a.UserID == b.UserID:
		return LevelOwner, nil
	case ownsVendor(a, vendorOwnerID):
		return LevelVendor, nil
	}
	return LevelPublic, ErrForbidden
}

// CanCompleteBooking: only the vendor the booking was made with. Also gates confirm.
func CanCompleteBooking(a Actor, b *domain.Booking, vendorOwnerID int64) (Level, error) {
	if !a.Authenticated() {
		return LevelPublic, ErrUnauthenticated
	}
	if ownsVendor(a, vendorOwnerID) {
		return LevelVendor, nil
	}
	return LevelPublic, ErrForbidden
}

// CanCancelBooking: the user who booked or the vendor it was made with.
func CanCancelBooking(a Actor, b *domain.Booking, vendorOwnerID int64) (Level, error) {
	if !a.Authenticated() {
		return LevelPublic, ErrUnauthenticated
	}
	switch {
	case a.Is(domain.RoleUser) && a.UserID == b.UserID:
		return LevelOwner, nil
	case ownsVendor(a, vendorOwnerID):
		return LevelVendor, nil
	}
	return LevelPublic, ErrForbidden
}

func CanSubmitFeedback(a Actor, b *domain.Booking) (Level, error) {
	if !a.Authenticated() {
		return LevelPublic, ErrUnauthenticated
	}
	if a.Is(domain.RoleUser) && a.UserID == b.UserID {
		return LevelOwner, nil
	}
	return LevelPublic, ErrForbidden
}

// CanManageVendor: admins act on any vendor, a vendor account only on its own profile.
func CanManageVendor(a Actor, v *domain.Vendor) (Level, error) {
	if !a.Authenticated() {
		return LevelPublic, ErrUnauthenticated
	}
	switch {
	case a.Role == domain.RoleAdmin:
		return LevelAdmin, nil
	case a.Is(domain.RoleVendor) && v.UserID == a.UserID:
		return LevelOwner, nil
	}
	return LevelPublic, ErrForbidden
}
