package auth

import (
	"context"

	"shesafe/internal/domain"
)

// UserRepository — only the methods auth service uses
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type VendorLookup interface {
	ExistsForUser(ctx context.Context, userID int64) (bool, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
