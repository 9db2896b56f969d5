package bookings

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"venuebook/internal/notifications"
	"venuebook/internal/packages"
	"venuebook/internal/shared/apperr"
	"venuebook/internal/users"
	"venuebook/internal/venues"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc   Service
	repo  *fakeRepo
	pub   *recordingPublisher
	venue *venues.Venue
	user  *users.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newFakeRepo()
	pub := &recordingPublisher{}
	return &fixture{
		svc:   NewService(repo, NewNoopVenueLock(), pub, cache.NewNoopService(), logger.Discard()),
		repo:  repo,
		pub:   pub,
		venue: repo.addVenue("Riverside Hall", venues.VenueStatusAvailable),
		user:  repo.addUser("maria"),
	}
}

func (f *fixture) request(start string, days int) CreateBookingRequest {
	return CreateBookingRequest{VenueID: f.venue.ID, StartTime: start, DurationHours: intPtr(days)}
}

func TestCreateBookingConfirmsAndPublishes(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.CreateBooking(context.Background(), f.user.ID, f.request("2025-01-10", 2))
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, resp.Status)
	assert.Equal(t, PaymentPending, resp.PaymentStatus)
	assert.Equal(t, day(2025, 1, 10), resp.StartTime)
	assert.Equal(t, time.Date(2025, 1, 11, 23, 59, 59, 999999000, time.UTC), resp.EndTime)
	assert.Equal(t, "Riverside Hall", resp.VenueName)
	assert.Equal(t, "maria", resp.UserName)
	assert.NotNil(t, resp.AdditionalServices)
	assert.NotNil(t, resp.PackageServices)

	require.Equal(t, 1, f.pub.count())
	event := f.pub.events[0]
	assert.Equal(t, notifications.EventTypeBookingCreated, event.Type)
	assert.Equal(t, resp.ID, event.BookingID)
	assert.Equal(t, f.venue.ID.String(), event.GetPartitionKey())
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, f.user.ID, f.request("2025-01-10", 2))
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(ctx, f.user.ID, f.request("2025-01-11", 1))
	assert.True(t, apperr.IsConflict(err), "got %v", err)
	assert.Equal(t, 1, f.repo.bookingCount())
	assert.Equal(t, 1, f.pub.count())

	// the day after the range is free
	_, err = f.svc.CreateBooking(ctx, f.user.ID, f.request("2025-01-12", 1))
	assert.NoError(t, err)
}

func TestCreateBookingOnOtherVenueDoesNotConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.repo.addVenue("Rooftop", venues.VenueStatusAvailable)

	_, err := f.svc.CreateBooking(ctx, f.user.ID, f.request("2025-01-10", 2))
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(ctx, f.user.ID, CreateBookingRequest{VenueID: other.ID, StartTime: "2025-01-10", DurationHours: intPtr(2)})
	assert.NoError(t, err)
}

func TestCreateBookingMaintenanceVenue(t *testing.T) {
	f := newFixture(t)
	closed := f.repo.addVenue("Closed Hall", venues.VenueStatusMaintenance)

	_, err := f.svc.CreateBooking(context.Background(), f.user.ID, CreateBookingRequest{
		VenueID:       closed.ID,
		StartTime:     "2025-01-10",
		DurationHours: intPtr(1),
	})
	assert.True(t, apperr.IsInvalidState(err), "got %v", err)
	assert.Equal(t, 0, f.repo.bookingCount())
	assert.Equal(t, 0, f.pub.count())
}

func TestCreateBookingMissingEntities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, f.user.ID, CreateBookingRequest{VenueID: uuid.New(), StartTime: "2025-01-10", DurationHours: intPtr(1)})
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.svc.CreateBooking(ctx, uuid.New(), f.request("2025-01-10", 1))
	assert.True(t, apperr.IsNotFound(err))

	missing := uuid.New()
	req := f.request("2025-01-10", 1)
	req.PackageID = &missing
	_, err = f.svc.CreateBooking(ctx, f.user.ID, req)
	assert.True(t, apperr.IsNotFound(err))

	assert.Equal(t, 0, f.repo.bookingCount())
}

func TestCreateBookingInactivePackage(t *testing.T) {
	f := newFixture(t)
	pkg := basePackage()
	pkg.VenueID = f.venue.ID
	pkg.IsActive = false
	f.repo.addPackage(pkg)

	req := f.request("2025-01-10", 1)
	req.PackageID = &pkg.ID
	_, err := f.svc.CreateBooking(context.Background(), f.user.ID, req)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateBookingPackageFromAnotherVenue(t *testing.T) {
	f := newFixture(t)
	other := f.repo.addVenue("Elsewhere", venues.VenueStatusAvailable)
	pkg := basePackage()
	pkg.VenueID = other.ID
	f.repo.addPackage(pkg)

	req := CreateBookingRequest{VenueID: f.venue.ID, PackageID: &pkg.ID, StartTime: "2025-01-10"}
	_, err := f.svc.CreateBooking(context.Background(), f.user.ID, req)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	other := f.repo.addVenue("Elsewhere", venues.VenueStatusAvailable)
	foreign := f.repo.addService(other.ID, "Foreign DJ", "100")

	tests := []struct {
		name string
		req  CreateBookingRequest
	}{
		{"bad start", CreateBookingRequest{VenueID: f.venue.ID, StartTime: "next tuesday", DurationHours: intPtr(1)}},
		{"no duration", CreateBookingRequest{VenueID: f.venue.ID, StartTime: "2025-01-10"}},
		{"foreign service", CreateBookingRequest{
			VenueID:              f.venue.ID,
			StartTime:            "2025-01-10",
			DurationHours:        intPtr(1),
			AdditionalServiceIDs: []uuid.UUID{foreign.ID},
		}},
		{"unknown service", CreateBookingRequest{
			VenueID:              f.venue.ID,
			StartTime:            "2025-01-10",
			DurationHours:        intPtr(1),
			AdditionalServiceIDs: []uuid.UUID{uuid.New()},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateBooking(context.Background(), f.user.ID, tt.req)
			assert.True(t, apperr.IsValidation(err), "got %v", err)
		})
	}
	assert.Equal(t, 0, f.repo.bookingCount())
}

func TestCreateBookingWithPackagePricesAndSnapshots(t *testing.T) {
	f := newFixture(t)
	pkg := basePackage()
	pkg.VenueID = f.venue.ID
	pkg.Services = []packages.PackageService{
		{Name: "Cake", Price: dec("80"), IsIncludedInPackage: true},
		{Name: "Photo booth", Price: dec("120.10"), IsAvailableForCustomization: true},
	}
	f.repo.addPackage(pkg)
	dj := f.repo.addService(f.venue.ID, "DJ", "250.25")

	req := CreateBookingRequest{
		VenueID:              f.venue.ID,
		PackageID:            &pkg.ID,
		StartTime:            "2025-06-01T10:00:00",
		ModifiedCapacity:     intPtr(60),
		AdditionalServiceIDs: []uuid.UUID{dj.ID, dj.ID},
		PackageServiceIDs:    []uuid.UUID{pkg.Services[0].ID, pkg.Services[1].ID},
	}
	resp, err := f.svc.CreateBooking(context.Background(), f.user.ID, req)
	require.NoError(t, err)

	assert.True(t, dec("1000").Equal(resp.BasePackageCost))
	assert.True(t, dec("100").Equal(resp.CapacityExtensionCost))
	assert.True(t, resp.DurationExtensionCost.IsZero())
	assert.True(t, dec("250.25").Equal(resp.AdditionalServicesCost))
	assert.True(t, dec("1470.35").Equal(resp.TotalCost), resp.TotalCost.String())
	assert.Equal(t, "Standard", resp.PackageName)

	// package default duration of 2 applies
	assert.Equal(t, EndTimeFor(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), 2), resp.EndTime)

	require.Len(t, resp.AdditionalServices, 1, "duplicate ids collapse")
	assert.Equal(t, "DJ", resp.AdditionalServices[0].Name)
	require.Len(t, resp.PackageServices, 2)
	assert.True(t, resp.PackageServices[0].IsIncludedInPackage)
}

func TestCreateBookingIgnoresPackageServicesWithoutPackage(t *testing.T) {
	f := newFixture(t)
	req := f.request("2025-01-10", 1)
	req.PackageServiceIDs = []uuid.UUID{uuid.New()}

	resp, err := f.svc.CreateBooking(context.Background(), f.user.ID, req)
	require.NoError(t, err)
	assert.Empty(t, resp.PackageServices)
	assert.True(t, resp.TotalCost.IsZero())
}

func TestCreateBookingUnknownPackageService(t *testing.T) {
	f := newFixture(t)
	pkg := basePackage()
	pkg.VenueID = f.venue.ID
	f.repo.addPackage(pkg)

	req := CreateBookingRequest{
		VenueID:           f.venue.ID,
		PackageID:         &pkg.ID,
		StartTime:         "2025-01-10",
		PackageServiceIDs: []uuid.UUID{uuid.New()},
	}
	_, err := f.svc.CreateBooking(context.Background(), f.user.ID, req)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateBookingConcurrentRequestsSingleWinner(t *testing.T) {
	f := newFixture(t)
	const attempts = 12

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.CreateBooking(context.Background(), f.user.ID, f.request("2025-03-01", 3))
		}(i)
	}
	wg.Wait()

	succeeded, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case apperr.IsConflict(err):
			conflicts++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, f.repo.bookingCount())
}

func TestCreateBookingVenueLockBusy(t *testing.T) {
	repo := newFakeRepo()
	venue := repo.addVenue("Busy", venues.VenueStatusAvailable)
	user := repo.addUser("sam")
	svc := NewService(repo, busyLocker{}, notifications.NewNoopPublisher(), cache.NewNoopService(), logger.Discard())

	_, err := svc.CreateBooking(context.Background(), user.ID, CreateBookingRequest{VenueID: venue.ID, StartTime: "2025-01-10", DurationHours: intPtr(1)})
	assert.True(t, apperr.IsUnavailable(err), "got %v", err)
	assert.False(t, apperr.IsConflict(err))
	assert.Equal(t, 0, repo.bookingCount())
}

func TestCreateBookingReloadFailureReturnsCommittedBooking(t *testing.T) {
	f := newFixture(t)
	f.repo.failReload = true

	resp, err := f.svc.CreateBooking(context.Background(), f.user.ID, f.request("2025-01-10", 1))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, StatusConfirmed, resp.Status)
	assert.Equal(t, day(2025, 1, 10), resp.StartTime)
	assert.Equal(t, 1, f.repo.bookingCount())
	assert.Equal(t, 1, f.pub.count())
}

func TestCreateBookingDurationLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, f.user.ID, f.request("2025-01-01", MaxBookingDays+1))
	assert.True(t, apperr.IsValidation(err), "got %v", err)

	pkg := basePackage()
	pkg.VenueID = f.venue.ID
	f.repo.addPackage(pkg)
	req := f.request("2025-01-01", 1)
	req.PackageID = &pkg.ID
	req.ModifiedDurationHours = intPtr(3000000)
	_, err = f.svc.CreateBooking(ctx, f.user.ID, req)
	assert.True(t, apperr.IsValidation(err), "got %v", err)
	assert.Equal(t, 0, f.repo.bookingCount())

	resp, err := f.svc.CreateBooking(ctx, f.user.ID, f.request("2025-01-01", MaxBookingDays))
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", resp.EndTime.Format(dateLayout))
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, f.user.ID, f.request("2025-01-10", 2))
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(ctx, f.user.ID, f.request("2025-01-20", 1))
	require.NoError(t, err)

	busy, err := f.svc.CheckAvailability(ctx, f.venue.ID, day(2025, 1, 11), 1)
	require.NoError(t, err)
	assert.False(t, busy.IsAvailable)
	assert.NotEmpty(t, busy.Reason)
	assert.Equal(t, []string{"2025-01-10", "2025-01-11", "2025-01-20"}, busy.BookedDates)

	free, err := f.svc.CheckAvailability(ctx, f.venue.ID, day(2025, 1, 12), 2)
	require.NoError(t, err)
	assert.True(t, free.IsAvailable)
	assert.Equal(t, time.Date(2025, 1, 13, 23, 59, 59, 999999000, time.UTC), free.EndTime)
}

func TestCheckAvailabilityMaintenanceSkipsBookings(t *testing.T) {
	f := newFixture(t)
	closed := f.repo.addVenue("Closed", venues.VenueStatusMaintenance)

	resp, err := f.svc.CheckAvailability(context.Background(), closed.ID, day(2030, 1, 1), 1)
	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)
	assert.Equal(t, []string{}, resp.BookedDates)
	assert.Equal(t, 0, f.repo.activeListCalls)
}

func TestCheckAvailabilityRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CheckAvailability(ctx, f.venue.ID, day(2025, 1, 1), 0)
	assert.True(t, apperr.IsValidation(err))

	_, err = f.svc.CheckAvailability(ctx, uuid.New(), day(2025, 1, 1), 1)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCheckAvailabilityRejectsWindowsEndingBeforeStart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, f.user.ID, f.request("2025-01-10", 1))
	require.NoError(t, err)

	for _, days := range []float64{1e-12, 1e19, math.Inf(1), math.NaN(), MaxBookingDays + 1} {
		resp, err := f.svc.CheckAvailability(ctx, f.venue.ID, day(2025, 1, 10), days)
		assert.True(t, apperr.IsValidation(err), "days=%v got %v", days, err)
		assert.Nil(t, resp, "days=%v", days)
	}

	booked, err := f.svc.CheckAvailability(ctx, f.venue.ID, day(2025, 1, 10), MaxBookingDays)
	require.NoError(t, err)
	assert.False(t, booked.IsAvailable)
}

func TestCancelBookingIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateBooking(ctx, f.user.ID, f.request("2025-01-10", 2))
	require.NoError(t, err)

	require.NoError(t, f.svc.CancelBooking(ctx, created.ID))
	require.NoError(t, f.svc.CancelBooking(ctx, created.ID))

	// one create and one cancel event; the second cancel is silent
	require.Equal(t, 2, f.pub.count())
	assert.Equal(t, notifications.EventTypeBookingCanceled, f.pub.events[1].Type)

	got, err := f.svc.GetBookingByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, got.Status)
	assert.True(t, created.TotalCost.Equal(got.TotalCost))
	assert.Equal(t, created.StartTime, got.StartTime)

	// the freed dates can be booked again
	_, err = f.svc.CreateBooking(ctx, f.user.ID, f.request("2025-01-11", 1))
	assert.NoError(t, err)
}

func TestCancelBookingNotFound(t *testing.T) {
	f := newFixture(t)
	err := f.svc.CancelBooking(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func TestBookingQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.repo.addUser("lee")

	first, err := f.svc.CreateBooking(ctx, f.user.ID, f.request("2025-02-10", 1))
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(ctx, other.ID, f.request("2025-02-01", 1))
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(ctx, f.user.ID, f.request("2025-03-05", 1))
	require.NoError(t, err)

	byVenue, err := f.svc.GetBookingsByVenue(ctx, f.venue.ID)
	require.NoError(t, err)
	require.Len(t, byVenue, 3)
	assert.Equal(t, day(2025, 2, 1), byVenue[0].StartTime)

	_, err = f.svc.GetBookingsByVenue(ctx, uuid.New())
	assert.True(t, apperr.IsNotFound(err))

	mine, err := f.svc.GetBookingsByUser(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	february, err := f.svc.GetBookingsByUserAndDateRange(ctx, f.user.ID, day(2025, 2, 1), EndTimeFor(day(2025, 2, 28), 1))
	require.NoError(t, err)
	require.Len(t, february, 1)
	assert.Equal(t, first.ID, february[0].ID)

	_, err = f.svc.GetBookingsByUserAndDateRange(ctx, f.user.ID, day(2025, 2, 1), day(2025, 2, 1))
	assert.True(t, apperr.IsValidation(err))

	inRange, err := f.svc.GetBookingsByDateRange(ctx, day(2025, 2, 1), EndTimeFor(day(2025, 2, 28), 1))
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	_, err = f.svc.GetBookingsByDateRange(ctx, day(2025, 3, 1), day(2025, 2, 1))
	assert.True(t, apperr.IsValidation(err))

	all, err := f.svc.GetAllBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
