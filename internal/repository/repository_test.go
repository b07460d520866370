package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shesafe/internal/database"
	"shesafe/internal/database/dbtest"
	"shesafe/internal/domain"
)

func seedUser(t *testing.T, db *gorm.DB, email string, role domain.UserRole) *domain.User {
	t.Helper()
	u := &domain.User{Name: "U " + email, Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedVendor(t *testing.T, db *gorm.DB, userID int64, verified, active bool) *domain.Vendor {
	t.Helper()
	v := &domain.Vendor{
		UserID:       userID,
		BusinessName: "Cafe Safe",
		Address:      "1 Main St",
		Latitude:     12.97,
		Longitude:    77.59,
		Category:     "Washroom,Cafe",
	}
	require.NoError(t, NewVendorRepository(db).CreateWithImages(context.Background(), v, []string{"/media/a", "/media/b", "/media/c"}))
	require.NoError(t, db.Model(v).Updates(map[string]any{"is_verified": verified, "is_active": active}).Error)
	return v
}

func TestUserRepository_EmailIsNormalised(t *testing.T) {
	db := dbtest.New(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "  Alice@Example.COM ", domain.RoleUser)
	assert.Equal(t, "alice@example.com", u.Email)

	got, err := repo.GetByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	dup := &domain.User{Name: "A", Email: "alice@example.com", PasswordHash: "x", Role: domain.RoleUser}
	err = repo.Create(ctx, dup)
	assert.True(t, database.IsUniqueViolation(err))
}

func TestVendorRepository_Discoverability(t *testing.T) {
	db := dbtest.New(t)
	repo := NewVendorRepository(db)
	ctx := context.Background()

	cases := []struct {
		verified, active, visible bool
	}{
		{false, false, false},
		{false, true, false},
		{true, false, false},
		{true, true, true},
	}

	for i, tc := range cases {
		u := seedUser(t, db, "v"+string(rune('a'+i))+"@x.io", domain.RoleVendor)
		v := seedVendor(t, db, u.ID, tc.verified, tc.active)

		_, err := repo.GetDiscoverable(ctx, v.ID)
		if tc.visible {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		}
	}

	list, total, err := repo.ListDiscoverable(ctx, VendorFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsVerified && list[0].IsActive)
}

func TestVendorRepository_Filters(t *testing.T) {
	db := dbtest.New(t)
	repo := NewVendorRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "v@x.io", domain.RoleVendor)
	seedVendor(t, db, u.ID, true, true)

	yes, no := true, false

	_, total, err := repo.ListDiscoverable(ctx, VendorFilters{Category: "cafe"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = repo.ListDiscoverable(ctx, VendorFilters{Category: "Caf"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, total, err = repo.ListDiscoverable(ctx, VendorFilters{CCTV: &yes})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, total, err = repo.ListDiscoverable(ctx, VendorFilters{FemaleStaff: &no, Query: "main"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestVendorRepository_ApproveIsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	repo := NewVendorRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "v@x.io", domain.RoleVendor)
	v := seedVendor(t, db, u.ID, false, false)

	changed, err := repo.Approve(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.Approve(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = repo.Disable(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.False(t, got.IsActive)
}

func TestVendorRepository_DeleteWithImagesKeepsBookings(t *testing.T) {
	db := dbtest.New(t)
	repo := NewVendorRepository(db)
	ctx := context.Background()

	vu := seedUser(t, db, "v@x.io", domain.RoleVendor)
	cu := seedUser(t, db, "c@x.io", domain.RoleUser)
	v := seedVendor(t, db, vu.ID, true, true)

	b := &domain.Booking{UserID: cu.ID, VendorID: v.ID, BookingTime: time.Now(), VisitDate: time.Now(), PaymentMode: domain.PaymentApp, Status: domain.BookingPending}
	require.NoError(t, NewBookingRepository(db).Create(ctx, b))

	require.NoError(t, repo.DeleteWithImages(ctx, v.ID))

	var images int64
	require.NoError(t, db.Model(&domain.VendorImage{}).Where("vendor_id = ?", v.ID).Count(&images).Error)
	assert.Zero(t, images)

	d, err := NewBookingRepository(db).GetDetails(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "", d.VendorName)

	assert.ErrorIs(t, repo.DeleteWithImages(ctx, v.ID), gorm.ErrRecordNotFound)
}

func TestBookingRepository_UpdateStatusIsConditional(t *testing.T) {
	db := dbtest.New(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	cu := seedUser(t, db, "c@x.io", domain.RoleUser)
	b := &domain.Booking{UserID: cu.ID, VendorID: 7, BookingTime: time.Now(), VisitDate: time.Now(), PaymentMode: domain.PaymentApp, Status: domain.BookingPending}
	require.NoError(t, repo.Create(ctx, b))

	ok, err := repo.UpdateStatus(ctx, b.ID, domain.BookingPending, domain.BookingCompleted)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateStatus(ctx, b.ID, domain.BookingPending, domain.BookingCompleted)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFeedbackRepository_RunningAverage(t *testing.T) {
	db := dbtest.New(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	vu := seedUser(t, db, "v@x.io", domain.RoleVendor)
	cu := seedUser(t, db, "c@x.io", domain.RoleUser)
	v := seedVendor(t, db, vu.ID, true, true)

	for i, overall := range []float64{4, 5, 3} {
		f := &domain.Feedback{BookingID: int64(i + 1), VendorID: v.ID, UserID: cu.ID, Hygiene: 3, Safety: 3, StaffBehavior: 3, OverallRating: overall}
		require.NoError(t, repo.CreateAndApplyRating(ctx, f))
	}

	got, err := NewVendorRepository(db).GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ReviewCount)
	assert.InDelta(t, 4.0, got.AverageRating, 1e-9)
	assert.InDelta(t, 12.0, got.RatingSum, 1e-9)

	dup := &domain.Feedback{BookingID: 1, VendorID: v.ID, UserID: cu.ID, Hygiene: 5, Safety: 5, StaffBehavior: 5, OverallRating: 5}
	err = repo.CreateAndApplyRating(ctx, dup)
	assert.True(t, database.IsUniqueViolation(err))

	got, err = NewVendorRepository(db).GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ReviewCount)

	views, err := repo.ListByVendor(ctx, v.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, views, 3)
	assert.Equal(t, cu.Name, views[0].UserName)
}

func TestVendorRepository_MediaURLs(t *testing.T) {
	db := dbtest.New(t)
	repo := NewVendorRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "v@x.io", domain.RoleVendor)
	v := seedVendor(t, db, u.ID, true, true)

	thumb := "/media/thumb.png"
	v.ThumbnailURL = &thumb
	require.NoError(t, repo.UpdateProfile(ctx, v))

	urls, err := repo.MediaURLs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/media/a", "/media/b", "/media/c", thumb}, urls)

	require.NoError(t, repo.DeleteWithImages(ctx, v.ID))
	urls, err = repo.MediaURLs(ctx)
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestVendorRepository_FiltersMatchWildcardsLiterally(t *testing.T) {
	db := dbtest.New(t)
	repo := NewVendorRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "v@x.io", domain.RoleVendor)
	seedVendor(t, db, u.ID, true, true)

	for _, q := range []string{"%", "_", "Cafe%Safe", "C_fe"} {
		_, total, err := repo.ListDiscoverable(ctx, VendorFilters{Query: q})
		require.NoError(t, err)
		assert.Zero(t, total, "query %q", q)
	}
	for _, c := range []string{"%", "Caf_", "Washroom%"} {
		_, total, err := repo.ListDiscoverable(ctx, VendorFilters{Category: c})
		require.NoError(t, err)
		assert.Zero(t, total, "category %q", c)
	}

	u2 := seedUser(t, db, "w@x.io", domain.RoleVendor)
	v2 := seedVendor(t, db, u2.ID, true, true)
	require.NoError(t, db.Model(v2).Updates(map[string]any{"business_name": "100% Safe_Stop", "category": "Rest_Stop"}).Error)

	list, total, err := repo.ListDiscoverable(ctx, VendorFilters{Query: "0% safe_"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, v2.ID, list[0].ID)

	_, total, err = repo.ListDiscoverable(ctx, VendorFilters{Category: "rest_stop"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
