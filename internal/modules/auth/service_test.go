package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shesafe/internal/domain"
	"shesafe/internal/pkg/apperror"
	"shesafe/internal/pkg/jwt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 101 // simulate DB insert
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockVendorLookup struct {
	mock.Mock
}

func (m *mockVendorLookup) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func newTestService(users *mockUserRepo, vendors *mockVendorLookup) (*Service, *jwt.Service) {
	tokens := jwt.New("test-secret", time.Hour)
	s := NewService(users, vendors, tokens, time.Hour)
	s.bcryptCost = bcrypt.MinCost
	return s, tokens
}

func TestService_Register_Success(t *testing.T) {
	users := new(mockUserRepo)
	s, tokens := newTestService(users, nil)

	users.On("GetByEmail", mock.Anything, "asha@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "asha@example.com" && u.Role == domain.RoleVendor && u.PasswordHash != "secret1"
	})).Return(nil)

	out, err := s.Register(context.Background(), RegisterRequest{
		Name: "Asha", Email: " Asha@Example.com ", Password: "secret1", Role: "vendor",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(101), out.User.ID)
	assert.Equal(t, "vendor", out.User.Role)
	assert.Equal(t, int64(3600), out.ExpiresIn)

	claims, err := tokens.ValidateToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(101), claims.UserID)
	users.AssertExpectations(t)
}

func TestService_Register_DefaultsToUser(t *testing.T) {
	users := new(mockUserRepo)
	s, _ := newTestService(users, nil)

	users.On("GetByEmail", mock.Anything, "u@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := s.Register(context.Background(), RegisterRequest{Name: "Us", Email: "u@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "user", out.User.Role)
}

func TestService_Register_RejectsAdmin(t *testing.T) {
	users := new(mockUserRepo)
	s, _ := newTestService(users, nil)

	_, err := s.Register(context.Background(), RegisterRequest{Name: "Root", Email: "r@example.com", Password: "secret1", Role: "admin"})
	assert.ErrorIs(t, err, ErrRoleNotAllowed)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_EmailExists(t *testing.T) {
	users := new(mockUserRepo)
	s, _ := newTestService(users, nil)

	users.On("GetByEmail", mock.Anything, "taken@example.com").Return(&domain.User{ID: 1}, nil)

	_, err := s.Register(context.Background(), RegisterRequest{Name: "Dup", Email: "taken@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestService_Register_StorageFailure(t *testing.T) {
	users := new(mockUserRepo)
	s, _ := newTestService(users, nil)

	users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := s.Register(context.Background(), RegisterRequest{Name: "Net", Email: "n@example.com", Password: "secret1"})
	assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))
}

func TestService_Login(t *testing.T) {
	users := new(mockUserRepo)
	s, _ := newTestService(users, nil)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	users.On("GetByEmail", mock.Anything, "a@example.com").Return(&domain.User{ID: 5, Email: "a@example.com", PasswordHash: string(hash), Role: domain.RoleUser}, nil)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	out, err := s.Login(context.Background(), LoginRequest{Email: "a@example.com", Password: "correct"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	_, err = s.Login(context.Background(), LoginRequest{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Me_VendorOnboardingFlag(t *testing.T) {
	users := new(mockUserRepo)
	vendors := new(mockVendorLookup)
	s, _ := newTestService(users, vendors)

	users.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{ID: 9, Role: domain.RoleVendor}, nil)
	users.On("GetByID", mock.Anything, int64(3)).Return(&domain.User{ID: 3, Role: domain.RoleUser}, nil)
	vendors.On("ExistsForUser", mock.Anything, int64(9)).Return(true, nil)

	me, err := s.Me(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, me.Onboarded)
	assert.True(t, *me.Onboarded)

	me, err = s.Me(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, me.Onboarded)
	vendors.AssertNumberOfCalls(t, "ExistsForUser", 1)
}
