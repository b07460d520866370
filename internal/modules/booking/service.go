package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"shesafe/internal/access"
	"shesafe/internal/domain"
	"shesafe/internal/pkg/apperror"
	"shesafe/internal/pkg/logger"
	"shesafe/internal/pkg/metrics"
	"shesafe/internal/pkg/qr"
	"shesafe/internal/repository"
)

type Service struct {
	bookings BookingRepository
	vendors  VendorReader
	notifier Notifier
	now      func() time.Time
}

func NewService(bookings BookingRepository, vendors VendorReader, notifier Notifier) *Service {
	return &Service{
		bookings: bookings,
		vendors:  vendors,
		notifier: notifier,
		now:      time.Now,
	}
}

// Book records a pending visit for a discoverable vendor. Visit dates are not checked
// against the clock or vendor capacity.
func (s *Service) Book(ctx context.Context, actor access.Actor, req CreateBookingRequest) (*domain.Booking, error) {
	if err := access.RequireRole(actor, domain.RoleUser); err != nil {
		return nil, err
	}

	visit, err := ParseVisitDate(strings.TrimSpace(req.VisitDate))
	if err != nil {
		return nil, err
	}

	mode := domain.PaymentMode(strings.TrimSpace(req.PaymentMode))
	if mode == "" {
		mode = domain.PaymentPayAtLocation
	}
	if !mode.Valid() {
		return nil, ErrInvalidPaymentMode
	}
	if req.Amount < 0 {
		return nil, ErrInvalidAmount
	}

	v, err := s.vendors.GetDiscoverable(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorUnavailable
		}
		return nil, apperror.Wrap(err)
	}

	dup, err := s.bookings.ExistsPending(ctx, actor.UserID, v.ID, visit)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	if dup {
		return nil, ErrDuplicateBooking
	}

	b := &domain.Booking{
		UserID:      actor.UserID,
		VendorID:    v.ID,
		BookingTime: s.now().UTC(),
		VisitDate:   visit,
		PaymentMode: mode,
		Amount:      req.Amount,
		Status:      domain.BookingPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, apperror.Wrap(err)
	}

	metrics.BookingsCreated.Inc()
	logger.Info("booking created", "booking_id", b.ID, "user_id", b.UserID, "vendor_id", b.VendorID)
	if s.notifier != nil {
		s.notifier.BookingCreated(b, v.UserID)
	}
	return b, nil
}

// Complete marks a visit as done. Only the vendor the booking was made with may do this,
// and only once.
func (s *Service) Complete(ctx context.Context, actor access.Actor, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, actor, bookingID, domain.BookingCompleted, access.CanCompleteBooking)
}

func (s *Service) Confirm(ctx context.Context, actor access.Actor, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, actor, bookingID, domain.BookingConfirmed, access.CanCompleteBooking)
}

func (s *Service) Cancel(ctx context.Context, actor access.Actor, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, actor, bookingID, domain.BookingCancelled, access.CanCancelBooking)
}

type gate func(access.Actor, *domain.Booking, int64) (access.Level, error)

func (s *Service) transition(ctx context.Context, actor access.Actor, bookingID int64, to domain.BookingStatus, allowed gate) (*domain.Booking, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	ownerID, err := s.vendorOwner(ctx, b.VendorID)
	if err != nil {
		return nil, err
	}

	lvl, err := allowed(actor, b, ownerID)
	if err != nil {
		return nil, err
	}

	as := ActorUser
	if lvl == access.LevelVendor {
		as = ActorVendor
	}
	if err := CanTransition(b.Status, to, as); err != nil {
		return nil, err
	}

	ok, err := s.bookings.UpdateStatus(ctx, b.ID, b.Status, to)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	if !ok {
		return nil, ErrStatusChanged
	}

	from := b.Status
	b.Status = to
	b.UpdatedAt = s.now().UTC()

	metrics.BookingTransitions.WithLabelValues(string(to)).Inc()
	logger.Info("booking status changed", "booking_id", b.ID, "from", from, "to", to, "by", actor.UserID)
	if s.notifier != nil {
		s.notifier.BookingStatusChanged(b, ownerID)
	}
	return b, nil
}

// Get returns a booking to its user, its vendor or an admin.
func (s *Service) Get(ctx context.Context, actor access.Actor, bookingID int64) (*BookingDetails, error) {
	d, err := s.bookings.GetDetails(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, apperror.Wrap(err)
	}

	ownerID, err := s.vendorOwner(ctx, d.VendorID)
	if err != nil {
		return nil, err
	}
	if _, err := access.CanViewBooking(actor, &d.Booking, ownerID); err != nil {
		return nil, err
	}
	return d, nil
}

// ReceiptQR renders the booking receipt as a PNG QR code.
func (s *Service) ReceiptQR(ctx context.Context, actor access.Actor, bookingID int64) ([]byte, error) {
	d, err := s.Get(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	png, err := qr.PNG(qr.Receipt{
		BookingID:  d.ID,
		UserName:   d.UserName,
		VendorName: d.VendorName,
		VisitDate:  d.VisitDate,
		Status:     string(d.Status),
	}, qr.DefaultSize)
	if err != nil {
		return nil, apperror.New(apperror.KindInternal, "QR_ERROR", "Failed to render receipt")
	}
	return png, nil
}

func (s *Service) ListMine(ctx context.Context, actor access.Actor, limit, offset int) ([]BookingDetails, error) {
	if err := access.RequireRole(actor, domain.RoleUser); err != nil {
		return nil, err
	}
	out, err := s.bookings.ListByUser(ctx, actor.UserID, limit, offset)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	return nonNil(out), nil
}

func (s *Service) ListForVendor(ctx context.Context, actor access.Actor, limit, offset int) ([]BookingDetails, error) {
	if err := access.RequireRole(actor, domain.RoleVendor); err != nil {
		return nil, err
	}
	v, err := s.vendors.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotOnboarded
		}
		return nil, apperror.Wrap(err)
	}

	out, err := s.bookings.ListByVendor(ctx, v.ID, limit, offset)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	return nonNil(out), nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, apperror.Wrap(err)
	}
	return b, nil
}

// vendorOwner returns the user id behind a vendor, or 0 when the vendor has been removed.
func (s *Service) vendorOwner(ctx context.Context, vendorID int64) (int64, error) {
	v, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, apperror.Wrap(err)
	}
	return v.UserID, nil
}

func nonNil(in []repository.BookingDetails) []repository.BookingDetails {
	if in == nil {
		return []repository.BookingDetails{}
	}
	return in
}
