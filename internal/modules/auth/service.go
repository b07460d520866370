package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shesafe/internal/database"
	"shesafe/internal/domain"
	"shesafe/internal/pkg/apperror"
	"shesafe/internal/pkg/logger"
	"shesafe/internal/pkg/validator"
)

// Service contains all business logic for authentication
type Service struct {
	users      UserRepository
	vendors    VendorLookup
	tokens     TokenIssuer
	tokenTTL   time.Duration
	bcryptCost int
}

func NewService(users UserRepository, vendors VendorLookup, tokens TokenIssuer, tokenTTL time.Duration) *Service {
	return &Service{
		users:      users,
		vendors:    vendors,
		tokens:     tokens,
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Register creates a user or vendor account and signs it in. Admin accounts cannot be
// self-registered.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Role == "" {
		req.Role = string(domain.RoleUser)
	}

	role := domain.UserRole(req.Role)
	if !role.SelfRegistrable() {
		return nil, ErrRoleNotAllowed
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, apperror.Validation("VALIDATION_ERROR", "Invalid registration data")
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Wrap(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperror.New(apperror.KindInternal, "INTERNAL_ERROR", "Failed to create account")
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, apperror.Wrap(err)
	}

	logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return s.issue(user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperror.Wrap(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me returns the current identity; vendor accounts also report whether they have onboarded.
func (s *Service) Me(ctx context.Context, userID int64) (*MeResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperror.Wrap(err)
	}

	out := &MeResponse{User: toPublic(user)}
	if user.Role == domain.RoleVendor && s.vendors != nil {
		onboarded, err := s.vendors.ExistsForUser(ctx, user.ID)
		if err != nil {
			return nil, apperror.Wrap(err)
		}
		out.Onboarded = &onboarded
	}
	return out, nil
}

func (s *Service) issue(user *domain.User) (*AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperror.New(apperror.KindInternal, "TOKEN_ERROR", "Failed to issue token")
	}
	return &AuthResponse{
		User:      toPublic(user),
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}
