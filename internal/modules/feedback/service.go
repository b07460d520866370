package feedback

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"shesafe/internal/access"
	"shesafe/internal/database"
	"shesafe/internal/domain"
	"shesafe/internal/pkg/apperror"
	"shesafe/internal/pkg/logger"
	"shesafe/internal/pkg/metrics"
	"shesafe/internal/pkg/validator"
	"shesafe/internal/repository"
)

type Service struct {
	feedback FeedbackRepository
	bookings BookingReader
	vendors  VendorReader
	notifier Notifier
	locks    *keyedMutex
}

func NewService(feedback FeedbackRepository, bookings BookingReader, vendors VendorReader, notifier Notifier) *Service {
	return &Service{
		feedback: feedback,
		bookings: bookings,
		vendors:  vendors,
		notifier: notifier,
		locks:    newKeyedMutex(),
	}
}

// Submit records the caller's feedback for a completed booking and folds its overall
// score into the vendor's average. Each booking accepts feedback once.
func (s *Service) Submit(ctx context.Context, actor access.Actor, bookingID int64, req SubmitRequest) (*domain.Feedback, error) {
	if errs := validator.Validate(req); errs != nil {
		if _, ok := errs["Comments"]; ok && len(errs) == 1 {
			return nil, apperror.Validation("VALIDATION_ERROR", "Comments are too long")
		}
		return nil, ErrInvalidRating
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, apperror.Wrap(err)
	}

	if _, err := access.CanSubmitFeedback(actor, b); err != nil {
		return nil, err
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrBookingNotCompleted
	}

	unlock := s.locks.Lock(b.VendorID)
	defer unlock()

	exists, err := s.feedback.ExistsForBooking(ctx, b.ID)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	if exists {
		return nil, ErrAlreadySubmitted
	}

	f := &domain.Feedback{
		BookingID:     b.ID,
		VendorID:      b.VendorID,
		UserID:        actor.UserID,
		Hygiene:       req.Hygiene,
		Safety:        req.Safety,
		StaffBehavior: req.StaffBehavior,
		OverallRating: domain.ComputeOverall(req.Hygiene, req.Safety, req.StaffBehavior),
		Comments:      strings.TrimSpace(req.Comments),
	}
	if err := s.feedback.CreateAndApplyRating(ctx, f); err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return nil, ErrAlreadySubmitted
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrVendorNotFound
		}
		return nil, apperror.Wrap(err)
	}

	metrics.FeedbackSubmitted.Inc()
	logger.Info("feedback submitted", "booking_id", b.ID, "vendor_id", b.VendorID, "overall", f.OverallRating)
	if s.notifier != nil {
		if v, err := s.vendors.GetByID(ctx, b.VendorID); err == nil {
			s.notifier.FeedbackReceived(f, v.UserID)
		}
	}
	return f, nil
}

// ListForVendor returns public feedback for a discoverable vendor, newest first.
func (s *Service) ListForVendor(ctx context.Context, vendorID int64, limit, offset int) ([]repository.FeedbackView, error) {
	if _, err := s.vendors.GetDiscoverable(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, apperror.Wrap(err)
	}

	out, err := s.feedback.ListByVendor(ctx, vendorID, limit, offset)
	if err != nil {
		return nil, apperror.Wrap(err)
	}
	if out == nil {
		out = []repository.FeedbackView{}
	}
	return out, nil
}
