package booking

import (
	"context"
	"time"

	"shesafe/internal/domain"
	"shesafe/internal/repository"
)

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetDetails(ctx context.Context, id int64) (*repository.BookingDetails, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]repository.BookingDetails, error)
	ListByVendor(ctx context.Context, vendorID int64, limit, offset int) ([]repository.BookingDetails, error)
	ExistsPending(ctx context.Context, userID, vendorID int64, visitDate time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
}

// VendorReader is the slice of the vendor registry bookings need.
type VendorReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Vendor, error)
	GetDiscoverable(ctx context.Context, id int64) (*domain.Vendor, error)
}

type Notifier interface {
	BookingCreated(b *domain.Booking, vendorOwnerID int64)
	BookingStatusChanged(b *domain.Booking, vendorOwnerID int64)
}
