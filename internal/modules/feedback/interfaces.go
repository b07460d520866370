package feedback

import (
	"context"

	"shesafe/internal/domain"
	"shesafe/internal/repository"
)

type FeedbackRepository interface {
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	CreateAndApplyRating(ctx context.Context, f *domain.Feedback) error
	ListByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]repository.FeedbackView, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type VendorReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
	GetDiscoverable(ctx context.Context, id int64) (*domain.Vendor, error)
}

type Notifier interface {
	FeedbackReceived(f *domain.Feedback, vendorOwnerID int64)
}
