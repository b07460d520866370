package admin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shesafe/internal/access"
	"shesafe/internal/domain"
	"shesafe/internal/pkg/apperror"
	"shesafe/internal/pkg/logger"
	"shesafe/internal/pkg/metrics"
	"shesafe/internal/repository"
)

type Service struct {
	users    UserReader
	vendors  VendorRepository
	bookings BookingReader
	feedback FeedbackCounter
	notifier Notifier
}

func NewService(
	users UserReader,
	vendors VendorRepository,
	bookings BookingReader,
	feedback FeedbackCounter,
	notifier Notifier,
) *Service {
	return &Service{
		users:    users,
		vendors:  vendors,
		bookings: bookings,
		feedback: feedback,
		notifier: notifier,
	}
}

func (s *Service) loadVendor(ctx context.Context, id int64) (*domain.Vendor, error) {
	v, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, apperror.Wrap(err)
	}
	return v, nil
}

// Approve makes a vendor discoverable. Approving an already active vendor writes nothing
// and reports Changed=false.
func (s *Service) Approve(ctx context.Context, actor access.Actor, vendorID int64) (*DecisionResponse, error) {
	if err := access.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	v, err := s.loadVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	changed, err := s.vendors.Approve(ctx, v.ID)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	if changed {
		v.IsVerified, v.IsActive = true, true
		metrics.VendorDecisions.WithLabelValues("approve").Inc()
		logger.Info("vendor approved", "vendor_id", v.ID, "admin_id", actor.UserID)
		if s.notifier != nil {
			s.notifier.VendorApproved(v)
		}
	}
	return &DecisionResponse{VendorID: v.ID, State: repository.VendorStateActive, Changed: changed}, nil
}

// Reject removes the vendor and its images. Bookings that reference it stay.
func (s *Service) Reject(ctx context.Context, actor access.Actor, vendorID int64) error {
	if err := access.RequireRole(actor, domain.RoleAdmin); err != nil {
		return err
	}
	v, err := s.loadVendor(ctx, vendorID)
	if err != nil {
		return err
	}

	if err := s.vendors.DeleteWithImages(ctx, v.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVendorNotFound
		}
		return apperror.Wrap(err)
	}

	metrics.VendorDecisions.WithLabelValues("reject").Inc()
	logger.Info("vendor rejected", "vendor_id", v.ID, "admin_id", actor.UserID)
	if s.notifier != nil {
		s.notifier.VendorRejected(v)
	}
	return nil
}

// Disable hides a vendor from public listings without touching its verification.
func (s *Service) Disable(ctx context.Context, actor access.Actor, vendorID int64) (*DecisionResponse, error) {
	if err := access.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	v, err := s.loadVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	changed, err := s.vendors.Disable(ctx, v.ID)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	if changed {
		v.IsActive = false
		metrics.VendorDecisions.WithLabelValues("disable").Inc()
		logger.Info("vendor disabled", "vendor_id", v.ID, "admin_id", actor.UserID)
		if s.notifier != nil {
			s.notifier.VendorDisabled(v)
		}
	}
	return &DecisionResponse{VendorID: v.ID, State: stateOf(v), Changed: changed}, nil
}

func (s *Service) ListVendors(ctx context.Context, actor access.Actor, state string, limit, offset int) ([]VendorRow, int64, error) {
	if err := access.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, 0, err
	}
	switch state {
	case "", repository.VendorStatePending, repository.VendorStateActive, repository.VendorStateDisabled:
	default:
		return nil, 0, ErrInvalidState
	}

	vendors, total, err := s.vendors.ListByState(ctx, state, limit, offset)
	if err != nil {
		return nil, 0, apperror.Wrap(err)
	}

	rows := make([]VendorRow, 0, len(vendors))
	for i := range vendors {
		rows = append(rows, VendorRow{Vendor: vendors[i], State: stateOf(&vendors[i])})
	}
	return rows, total, nil
}

func (s *Service) Stats(ctx context.Context, actor access.Actor) (*StatsResponse, error) {
	if err := access.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	vendors, err := s.vendors.Counts(ctx)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	bookings, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	feedback, err := s.feedback.Count(ctx)
	if err != nil {
		return nil, apperror.Wrap(err)
	}

	out := &StatsResponse{
		UsersByRole:      users,
		Vendors:          vendors,
		BookingsByStatus: bookings,
		TotalFeedback:    feedback,
	}
	for _, n := range users {
		out.TotalUsers += n
	}
	for _, n := range bookings {
		out.TotalBookings += n
	}
	return out, nil
}

func (s *Service) ListUsers(ctx context.Context, actor access.Actor, role string, limit, offset int) ([]domain.User, int64, error) {
	if err := access.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, 0, err
	}
	r := domain.UserRole(role)
	if r != "" && !r.Valid() {
		return nil, 0, ErrInvalidRole
	}

	users, total, err := s.users.List(ctx, r, limit, offset)
	if err != nil {
		return nil, 0, apperror.Wrap(err)
	}
	return users, total, nil
}

func (s *Service) ListBookings(ctx context.Context, actor access.Actor, status string, limit, offset int) ([]repository.BookingDetails, int64, error) {
	if err := access.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, 0, err
	}
	st := domain.BookingStatus(status)
	if st != "" && !st.Valid() {
		return nil, 0, ErrInvalidStatus
	}

	out, total, err := s.bookings.ListAll(ctx, st, limit, offset)
	if err != nil {
		return nil, 0, apperror.Wrap(err)
	}
	return out, total, nil
}
