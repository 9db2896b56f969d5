package bookings

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"venuebook/internal/notifications"
	"venuebook/internal/packages"
	"venuebook/internal/shared/apperr"
	"venuebook/internal/users"
	"venuebook/internal/venues"

	"github.com/google/uuid"
)

// fakeRepo keeps everything in memory. WithTx holds txMu for the whole callback,
// which stands in for the venue row lock.
type fakeRepo struct {
	txMu sync.Mutex
	mu   sync.Mutex

	venues   map[uuid.UUID]*venues.Venue
	users    map[uuid.UUID]*users.User
	packages map[uuid.UUID]*packages.VenuePackage
	services []venues.AdditionalService
	bookings []Booking

	activeListCalls int
	failReload      bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		venues:   make(map[uuid.UUID]*venues.Venue),
		users:    make(map[uuid.UUID]*users.User),
		packages: make(map[uuid.UUID]*packages.VenuePackage),
	}
}

func (f *fakeRepo) addVenue(name string, status venues.VenueStatus) *venues.Venue {
	v := &venues.Venue{ID: uuid.New(), Name: name, Type: "Hall", Status: status}
	f.venues[v.ID] = v
	return v
}

func (f *fakeRepo) addUser(name string) *users.User {
	u := &users.User{ID: uuid.New(), Name: name, Email: name + "@example.com", Role: users.RoleUser}
	f.users[u.ID] = u
	return u
}

func (f *fakeRepo) addPackage(p *packages.VenuePackage) *packages.VenuePackage {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Services {
		if p.Services[i].ID == uuid.Nil {
			p.Services[i].ID = uuid.New()
		}
		p.Services[i].PackageID = p.ID
	}
	f.packages[p.ID] = p
	return p
}

func (f *fakeRepo) addService(venueID uuid.UUID, name, price string) venues.AdditionalService {
	svc := venues.AdditionalService{ID: uuid.New(), VenueID: venueID, Name: name, Price: dec(price), Category: venues.CategoryOther}
	f.services = append(f.services, svc)
	return svc
}

func (f *fakeRepo) bookingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(tx Repository) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()
	return fn(f)
}

func (f *fakeRepo) LockVenue(ctx context.Context, venueID uuid.UUID) (*venues.Venue, error) {
	return f.GetVenue(ctx, venueID)
}

func (f *fakeRepo) GetVenue(ctx context.Context, venueID uuid.UUID) (*venues.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.venues[venueID]
	if !ok {
		return nil, apperr.NotFound("venue not found")
	}
	copied := *v
	return &copied, nil
}

func (f *fakeRepo) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[userID]
	return ok, nil
}

func (f *fakeRepo) GetActivePackage(ctx context.Context, packageID uuid.UUID) (*packages.VenuePackage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.packages[packageID]
	if !ok || !p.IsActive {
		return nil, apperr.NotFound("package not found or inactive")
	}
	copied := *p
	return &copied, nil
}

func (f *fakeRepo) GetVenueAdditionalServices(ctx context.Context, venueID uuid.UUID, ids []uuid.UUID) ([]venues.AdditionalService, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []venues.AdditionalService
	for _, svc := range f.services {
		if svc.VenueID == venueID && slices.Contains(ids, svc.ID) {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeRepo) HasOverlap(ctx context.Context, venueID uuid.UUID, startDate, endDate time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.VenueID == venueID && b.Status != StatusCanceled && DatesOverlap(b.StartTime, b.EndTime, startDate, endDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Create(ctx context.Context, booking *Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	for i := range booking.AdditionalServices {
		booking.AdditionalServices[i].BookingID = booking.ID
	}
	for i := range booking.PackageServices {
		booking.PackageServices[i].BookingID = booking.ID
	}
	f.bookings = append(f.bookings, *booking)
	return nil
}

func (f *fakeRepo) find(id uuid.UUID) (*Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			copied := f.bookings[i]
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("booking not found")
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.find(id)
}

func (f *fakeRepo) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReload {
		return nil, apperr.Internal("failed to load booking", errors.New("connection reset"))
	}
	b, err := f.find(id)
	if err != nil {
		return nil, err
	}
	b.Venue = f.venues[b.VenueID]
	b.User = f.users[b.UserID]
	if b.PackageID != nil {
		b.Package = f.packages[*b.PackageID]
	}
	return b, nil
}

func (f *fakeRepo) MarkCanceled(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			if f.bookings[i].Status == StatusCanceled {
				return false, nil
			}
			f.bookings[i].Status = StatusCanceled
			f.bookings[i].UpdatedAt = time.Now().UTC()
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) filter(keep func(b *Booking) bool, cmp func(a, b Booking) int) []Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Booking
	for i := range f.bookings {
		if keep(&f.bookings[i]) {
			b := f.bookings[i]
			b.Venue = f.venues[b.VenueID]
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, cmp)
	return out
}

func byStart(a, b Booking) int   { return a.StartTime.Compare(b.StartTime) }
func byCreated(a, b Booking) int { return b.CreatedAt.Compare(a.CreatedAt) }

func (f *fakeRepo) ListActiveByVenue(ctx context.Context, venueID uuid.UUID) ([]Booking, error) {
	f.mu.Lock()
	f.activeListCalls++
	f.mu.Unlock()
	return f.filter(func(b *Booking) bool { return b.VenueID == venueID && b.Status != StatusCanceled }, byStart), nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	return f.filter(func(b *Booking) bool { return b.UserID == userID }, byCreated), nil
}

func (f *fakeRepo) ListByUserAndDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Booking, error) {
	return f.filter(func(b *Booking) bool {
		return b.UserID == userID && !b.StartTime.Before(from) && !b.EndTime.After(to)
	}, byStart), nil
}

func (f *fakeRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]Booking, error) {
	return f.filter(func(b *Booking) bool { return !b.StartTime.Before(from) && !b.EndTime.After(to) }, byStart), nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]Booking, error) {
	return f.filter(func(b *Booking) bool { return true }, byCreated), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*notifications.BookingEvent
}

func (p *recordingPublisher) PublishBookingEvent(ctx context.Context, event *notifications.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type busyLocker struct{}

func (busyLocker) Acquire(ctx context.Context, venueID uuid.UUID) (func(), error) {
	return nil, ErrVenueLocked
}
