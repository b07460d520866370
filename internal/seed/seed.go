// Package seed loads the demo fixture: an admin account and a handful of approved vendors.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"shesafe/internal/domain"
	"shesafe/internal/pkg/logger"
	"shesafe/internal/repository"
)

//go:embed seed.yaml
var defaultFixture []byte

const (
	demoStaffStart = "08:00"
	demoStaffEnd   = "22:00"
)

type Account struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type VendorFixture struct {
	Email        string  `yaml:"email"`
	Name         string  `yaml:"name"`
	BusinessName string  `yaml:"business_name"`
	Address      string  `yaml:"address"`
	Lat          float64 `yaml:"lat"`
	Lng          float64 `yaml:"lng"`
	Category     string  `yaml:"category"`
	CCTV         bool    `yaml:"cctv"`
	FemaleStaff  bool    `yaml:"female_staff"`
	Image        string  `yaml:"image"`
}

type Fixture struct {
	Admin          Account         `yaml:"admin"`
	VendorPassword string          `yaml:"vendor_password"`
	Vendors        []VendorFixture `yaml:"vendors"`
}

func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if f.Admin.Email == "" || f.Admin.Password == "" {
		return nil, errors.New("fixture: admin email and password are required")
	}
	if len(f.Vendors) > 0 && f.VendorPassword == "" {
		return nil, errors.New("fixture: vendor_password is required")
	}
	return &f, nil
}

func Default() (*Fixture, error) {
	return Parse(defaultFixture)
}

type Result struct {
	UsersCreated   int
	VendorsCreated int
}

// Run applies the fixture. Accounts that already exist (by email) are left alone.
func Run(ctx context.Context, db *gorm.DB, f *Fixture, cost int) (Result, error) {
	var res Result
	users := repository.NewUserRepository(db)
	vendors := repository.NewVendorRepository(db)

	_, created, err := ensureUser(ctx, users, f.Admin.Name, f.Admin.Email, f.Admin.Password, domain.RoleAdmin, cost)
	if err != nil {
		return res, err
	}
	if created {
		res.UsersCreated++
	}

	for _, vf := range f.Vendors {
		u, created, err := ensureUser(ctx, users, vf.Name, vf.Email, f.VendorPassword, domain.RoleVendor, cost)
		if err != nil {
			return res, err
		}
		if created {
			res.UsersCreated++
		}

		exists, err := vendors.ExistsForUser(ctx, u.ID)
		if err != nil {
			return res, err
		}
		if exists {
			continue
		}

		v := toVendor(u.ID, vf)
		var images []string
		if vf.Image != "" {
			images = []string{vf.Image}
		}
		if err := vendors.CreateWithImages(ctx, v, images); err != nil {
			return res, fmt.Errorf("create vendor %s: %w", vf.Email, err)
		}
		if _, err := vendors.Approve(ctx, v.ID); err != nil {
			return res, fmt.Errorf("approve vendor %s: %w", vf.Email, err)
		}
		res.VendorsCreated++
		logger.Info("seeded vendor", "email", vf.Email, "vendor_id", v.ID)
	}
	return res, nil
}

func toVendor(userID int64, vf VendorFixture) *domain.Vendor {
	category := domain.JoinCategories(domain.SplitCategories(vf.Category))
	if category == "" {
		category = "Washroom"
	}
	v := &domain.Vendor{
		UserID:         userID,
		BusinessName:   vf.BusinessName,
		Address:        vf.Address,
		Latitude:       vf.Lat,
		Longitude:      vf.Lng,
		Category:       category,
		HasCCTV:        vf.CCTV,
		HasFemaleStaff: vf.FemaleStaff,
	}
	if vf.FemaleStaff {
		start, end := demoStaffStart, demoStaffEnd
		v.FemaleStaffStart, v.FemaleStaffEnd = &start, &end
	}
	if vf.Image != "" {
		thumb := vf.Image
		v.ThumbnailURL = &thumb
	}
	return v
}

func ensureUser(ctx context.Context, users *repository.UserRepository, name, email, password string, role domain.UserRole, cost int) (*domain.User, bool, error) {
	u, err := users.GetByEmail(ctx, email)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, false, err
	}
	u = &domain.User{Name: name, Email: email, PasswordHash: string(hash), Role: role}
	if err := users.Create(ctx, u); err != nil {
		return nil, false, fmt.Errorf("create user %s: %w", email, err)
	}
	return u, true, nil
}

// ResetAdmin sets the password of the admin account with email, creating the account
// when it does not exist yet.
func ResetAdmin(ctx context.Context, db *gorm.DB, email, password string, cost int) (created bool, err error) {
	users := repository.NewUserRepository(db)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return false, err
	}

	u, err := users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		u = &domain.User{Name: "Admin", Email: email, PasswordHash: string(hash), Role: domain.RoleAdmin}
		return true, users.Create(ctx, u)
	case err != nil:
		return false, err
	}

	if u.Role != domain.RoleAdmin {
		return false, fmt.Errorf("%s is a %s account, not an admin", email, u.Role)
	}
	return false, users.UpdatePassword(ctx, u.ID, string(hash))
}
