package feedback

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shesafe/internal/access"
	"shesafe/internal/database/dbtest"
	"shesafe/internal/domain"
	"shesafe/internal/repository"
)

type fixture struct {
	db       *gorm.DB
	svc      *Service
	vendors  *repository.VendorRepository
	customer access.Actor
	other    access.Actor
	vendor   *domain.Vendor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db)
	vendors := repository.NewVendorRepository(db)

	mk := func(name string, role domain.UserRole) access.Actor {
		u := &domain.User{Name: name, Email: name + "@x.io", PasswordHash: "x", Role: role}
		require.NoError(t, users.Create(ctx, u))
		return access.Actor{UserID: u.ID, Role: role}
	}
	owner := mk("owner", domain.RoleVendor)

	v := &domain.Vendor{UserID: owner.UserID, BusinessName: "Safe Stop", Address: "1 Main", Category: "Washroom"}
	require.NoError(t, vendors.CreateWithImages(ctx, v, nil))
	_, err := vendors.Approve(ctx, v.ID)
	require.NoError(t, err)

	return &fixture{
		db:       db,
		vendors:  vendors,
		customer: mk("asha", domain.RoleUser),
		other:    mk("bina", domain.RoleUser),
		vendor:   v,
		svc: NewService(
			repository.NewFeedbackRepository(db),
			repository.NewBookingRepository(db),
			vendors,
			nil,
		),
	}
}

func (f *fixture) booking(t *testing.T, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		UserID:      f.customer.UserID,
		VendorID:    f.vendor.ID,
		BookingTime: time.Now().UTC(),
		VisitDate:   time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		PaymentMode: domain.PaymentApp,
		Status:      status,
	}
	require.NoError(t, repository.NewBookingRepository(f.db).Create(context.Background(), b))
	return b
}

func (f *fixture) reload(t *testing.T) *domain.Vendor {
	t.Helper()
	v, err := f.vendors.GetByID(context.Background(), f.vendor.ID)
	require.NoError(t, err)
	return v
}

func rate(h, s, b int) SubmitRequest {
	return SubmitRequest{Hygiene: h, Safety: s, StaffBehavior: b}
}

func TestSubmit_RatingCorrectness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, r := range []SubmitRequest{rate(4, 4, 4), rate(5, 5, 5)} {
		_, err := f.svc.Submit(ctx, f.customer, f.booking(t, domain.BookingCompleted).ID, r)
		require.NoError(t, err)
	}
	assert.InDelta(t, 4.5, f.reload(t).AverageRating, 1e-9)

	fb, err := f.svc.Submit(ctx, f.customer, f.booking(t, domain.BookingCompleted).ID, rate(3, 3, 3))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, fb.OverallRating, 1e-9)

	v := f.reload(t)
	assert.InDelta(t, 4.0, v.AverageRating, 1e-9)
	assert.Equal(t, int64(3), v.ReviewCount)
}

func TestSubmit_MixedScoresAverage(t *testing.T) {
	f := newFixture(t)

	fb, err := f.svc.Submit(context.Background(), f.customer, f.booking(t, domain.BookingCompleted).ID, rate(5, 4, 3))
	require.NoError(t, err)
	assert.InDelta(t, 4.0, fb.OverallRating, 1e-9)
}

func TestSubmit_Idempotence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.booking(t, domain.BookingCompleted)

	_, err := f.svc.Submit(ctx, f.customer, b.ID, rate(5, 5, 5))
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, f.customer, b.ID, rate(1, 1, 1))
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	v := f.reload(t)
	assert.Equal(t, int64(1), v.ReviewCount)
	assert.InDelta(t, 5.0, v.AverageRating, 1e-9)
}

func TestSubmit_Preconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending := f.booking(t, domain.BookingPending)
	_, err := f.svc.Submit(ctx, f.customer, pending.ID, rate(5, 5, 5))
	assert.ErrorIs(t, err, ErrBookingNotCompleted)

	// ownership is checked before status
	_, err = f.svc.Submit(ctx, f.other, pending.ID, rate(5, 5, 5))
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = f.svc.Submit(ctx, f.customer, 424242, rate(5, 5, 5))
	assert.ErrorIs(t, err, ErrBookingNotFound)

	done := f.booking(t, domain.BookingCompleted)
	for _, r := range []SubmitRequest{rate(0, 5, 5), rate(5, 6, 5), rate(5, 5, -1)} {
		_, err = f.svc.Submit(ctx, f.customer, done.ID, r)
		assert.ErrorIs(t, err, ErrInvalidRating)
	}

	assert.Zero(t, f.reload(t).ReviewCount)
}

func TestSubmit_ConcurrentSubmissionsKeepEveryIncrement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 8
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = f.booking(t, domain.BookingCompleted).ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := f.svc.Submit(ctx, f.customer, id, rate(4, 4, 4))
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	v := f.reload(t)
	assert.Equal(t, int64(n), v.ReviewCount)
	assert.InDelta(t, 4.0, v.AverageRating, 1e-9)
	assert.Zero(t, f.svc.locks.size())
}

func TestListForVendor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, f.customer, f.booking(t, domain.BookingCompleted).ID, SubmitRequest{Hygiene: 5, Safety: 4, StaffBehavior: 5, Comments: " clean "})
	require.NoError(t, err)

	list, err := f.svc.ListForVendor(ctx, f.vendor.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "clean", list[0].Comments)
	assert.Equal(t, "asha", list[0].UserName)

	_, err = f.vendors.Disable(ctx, f.vendor.ID)
	require.NoError(t, err)
	_, err = f.svc.ListForVendor(ctx, f.vendor.ID, 20, 0)
	assert.ErrorIs(t, err, ErrVendorNotFound)
}

func TestKeyedMutex_SerialisesPerKey(t *testing.T) {
	k := newKeyedMutex()
	unlock := k.Lock(1)

	acquired := make(chan struct{})
	go func() {
		u := k.Lock(1)
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock on the same key must wait")
	case <-time.After(20 * time.Millisecond):
	}

	other := k.Lock(2)
	other()

	unlock()
	<-acquired
	assert.Zero(t, k.size())
}
