package dashboard

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shesafe/internal/access"
	"shesafe/internal/domain"
	"shesafe/internal/modules/admin"
	"shesafe/internal/pkg/apperror"
	"shesafe/internal/repository"
)

const recentLimit = 5

type BookingLister interface {
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]repository.BookingDetails, error)
	ListByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]repository.BookingDetails, error)
}

type VendorLookup interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Vendor, error)
}

type StatsProvider interface {
	Stats(ctx context.Context, actor access.Actor) (*admin.StatsResponse, error)
}

// View is what GET /dashboard returns. Only the fields for the caller's role are set.
type View struct {
	Role      domain.UserRole             `json:"role"`
	Bookings  []repository.BookingDetails `json:"bookings,omitempty"`
	Vendor    *domain.Vendor              `json:"vendor,omitempty"`
	Onboarded *bool                       `json:"onboarded,omitempty"`
	Stats     *admin.StatsResponse        `json:"stats,omitempty"`
}

type Service struct {
	bookings BookingLister
	vendors  VendorLookup
	stats    StatsProvider
}

func NewService(bookings BookingLister, vendors VendorLookup, stats StatsProvider) *Service {
	return &Service{bookings: bookings, vendors: vendors, stats: stats}
}

func (s *Service) Get(ctx context.Context, actor access.Actor) (*View, error) {
	if !actor.Authenticated() {
		return nil, access.ErrUnauthenticated
	}
	view := &View{Role: actor.Role}

	switch actor.Role {
	case domain.RoleUser:
		list, err := s.bookings.ListByUser(ctx, actor.UserID, recentLimit, 0)
		if err != nil {
			return nil, apperror.Wrap(err)
		}
		view.Bookings = list

	case domain.RoleVendor:
		v, err := s.vendors.GetByUserID(ctx, actor.UserID)
		onboarded := err == nil
		view.Onboarded = &onboarded
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return view, nil
			}
			return nil, apperror.Wrap(err)
		}
		view.Vendor = v

		list, err := s.bookings.ListByVendor(ctx, v.ID, recentLimit, 0)
		if err != nil {
			return nil, apperror.Wrap(err)
		}
		view.Bookings = list

	case domain.RoleAdmin:
		stats, err := s.stats.Stats(ctx, actor)
		if err != nil {
			return nil, err
		}
		view.Stats = stats
	}
	return view, nil
}
