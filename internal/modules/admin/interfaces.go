package admin

import (
	"context"

	"shesafe/internal/domain"
	"shesafe/internal/repository"
)

type VendorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
	ListByState(ctx context.Context, state string, limit, offset int) ([]domain.Vendor, int64, error)
	Approve(ctx context.Context, id int64) (bool, error)
	Disable(ctx context.Context, id int64) (bool, error)
	DeleteWithImages(ctx context.Context, id int64) error
	Counts(ctx context.Context) (repository.VendorCounts, error)
}

type UserReader interface {
	List(ctx context.Context, role domain.UserRole, limit, offset int) ([]domain.User, int64, error)
	CountByRole(ctx context.Context) (map[domain.UserRole]int64, error)
}

type BookingReader interface {
	ListAll(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]repository.BookingDetails, int64, error)
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error)
}

type FeedbackCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Notifier is told about moderation decisions so the vendor owner hears about them.
type Notifier interface {
	VendorApproved(v *domain.Vendor)
	VendorRejected(v *domain.Vendor)
	VendorDisabled(v *domain.Vendor)
}
