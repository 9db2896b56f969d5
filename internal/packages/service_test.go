package packages

import (
	"context"
	"errors"
	"sync"
	"testing"

	"venuebook/internal/search"
	"venuebook/internal/shared/apperr"
	"venuebook/internal/venues"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu     sync.Mutex
	venues map[uuid.UUID]*venues.Venue
	pkgs   []VenuePackage
}

func newFakeRepo(vs ...*venues.Venue) *fakeRepo {
	f := &fakeRepo{venues: make(map[uuid.UUID]*venues.Venue)}
	for _, v := range vs {
		f.venues[v.ID] = v
	}
	return f
}

func (f *fakeRepo) find(id uuid.UUID) int {
	for i := range f.pkgs {
		if f.pkgs[i].ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeRepo) VenueExists(ctx context.Context, venueID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.venues[venueID]
	return ok, nil
}

func (f *fakeRepo) Create(ctx context.Context, pkg *VenuePackage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pkgs = append(f.pkgs, *pkg)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, pkg *VenuePackage, services []PackageService) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(pkg.ID)
	if i < 0 {
		return apperr.NotFound("package not found")
	}
	updated := *pkg
	updated.Services = services
	f.pkgs[i] = updated
	return nil
}

func (f *fakeRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(id)
	if i < 0 || !f.pkgs[i].IsActive {
		return apperr.NotFound("package not found")
	}
	f.pkgs[i].IsActive = false
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*VenuePackage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(id)
	if i < 0 {
		return nil, apperr.NotFound("package not found")
	}
	p := f.pkgs[i]
	p.Venue = f.venues[p.VenueID]
	return &p, nil
}

func (f *fakeRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (*VenuePackage, error) {
	p, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, apperr.NotFound("package not found")
	}
	return p, nil
}

func (f *fakeRepo) active() []VenuePackage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]VenuePackage, 0, len(f.pkgs))
	for _, p := range f.pkgs {
		if p.IsActive {
			if v, ok := f.venues[p.VenueID]; ok {
				p.Venue = v
			}
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeRepo) FindActive(ctx context.Context, criteria FilterCriteria) ([]VenuePackage, error) {
	return f.active(), nil
}

func (f *fakeRepo) ListActive(ctx context.Context) ([]VenuePackage, error) {
	return f.active(), nil
}

func (f *fakeRepo) ListActiveByVenue(ctx context.Context, venueID uuid.UUID) ([]VenuePackage, error) {
	var out []VenuePackage
	for _, p := range f.active() {
		if p.VenueID == venueID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]VenuePackage, error) {
	var out []VenuePackage
	for _, p := range f.active() {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

type fakeIndex struct {
	mu      sync.Mutex
	docs    map[string]search.PackageDocument
	hits    []string
	failing bool
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: make(map[string]search.PackageDocument)}
}

func (f *fakeIndex) IndexPackage(ctx context.Context, doc search.PackageDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeIndex) DeletePackage(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) Search(ctx context.Context, query string, page, pageSize int) (*search.Result, error) {
	if f.failing {
		return nil, errors.New("cluster unavailable")
	}
	return &search.Result{IDs: f.hits, Total: int64(len(f.hits))}, nil
}

func newVenue(name, venueType string) *venues.Venue {
	return &venues.Venue{ID: uuid.New(), Name: name, Type: venueType, Status: venues.VenueStatusAvailable}
}

func packageRequest(venueID uuid.UUID, name string, price int64) PackageRequest {
	return PackageRequest{
		VenueID:           venueID,
		Name:              name,
		Tier:              TierBasic,
		BaseCapacity:      50,
		BaseDurationHours: 1,
		BasePrice:         decimal.NewFromInt(price),
		Services: []PackageServiceRequest{
			{Name: "Sound system", Price: decimal.NewFromInt(20), IsIncludedInPackage: true},
		},
	}
}

func TestCreatePackageIndexesDocument(t *testing.T) {
	hall := newVenue("Grand Hall", "Banquet Hall")
	index := newFakeIndex()
	svc := NewService(newFakeRepo(hall), cache.NewNoopService(), index, logger.Discard())

	created, err := svc.CreatePackage(context.Background(), packageRequest(hall.ID, " Starter ", 100))
	require.NoError(t, err)

	assert.Equal(t, "Starter", created.Name)
	assert.Equal(t, "Grand Hall", created.VenueName)
	assert.Equal(t, "Basic", created.TierName)
	require.Len(t, created.Services, 1)

	doc, ok := index.docs[created.ID.String()]
	require.True(t, ok)
	assert.Equal(t, "Banquet Hall", doc.VenueType)
	assert.Equal(t, []string{"Sound system"}, doc.Services)
}

func TestCreatePackageValidation(t *testing.T) {
	hall := newVenue("Grand Hall", "Banquet Hall")
	svc := NewService(newFakeRepo(hall), cache.NewNoopService(), nil, logger.Discard())
	ctx := context.Background()

	_, err := svc.CreatePackage(ctx, packageRequest(uuid.New(), "Orphan", 100))
	assert.True(t, apperr.IsNotFound(err))

	req := packageRequest(hall.ID, "Negative", -1)
	_, err = svc.CreatePackage(ctx, req)
	assert.True(t, apperr.IsValidation(err))

	req = packageRequest(hall.ID, "Bad tier", 100)
	req.Tier = 7
	_, err = svc.CreatePackage(ctx, req)
	assert.True(t, apperr.IsValidation(err))
}

func TestDeletePackageHidesItFromQueries(t *testing.T) {
	hall := newVenue("Grand Hall", "Banquet Hall")
	index := newFakeIndex()
	svc := NewService(newFakeRepo(hall), cache.NewNoopService(), index, logger.Discard())
	ctx := context.Background()

	created, err := svc.CreatePackage(ctx, packageRequest(hall.ID, "Starter", 100))
	require.NoError(t, err)

	require.NoError(t, svc.DeletePackage(ctx, created.ID))
	assert.Empty(t, index.docs)

	_, err = svc.GetPackageByID(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))

	filtered, err := svc.FilterPackages(ctx, FilterCriteria{})
	require.NoError(t, err)
	assert.Empty(t, filtered)

	opts, err := svc.GetFilterOptions(ctx)
	require.NoError(t, err)
	assert.Zero(t, opts.TotalPackages)

	assert.True(t, apperr.IsNotFound(svc.DeletePackage(ctx, created.ID)))
}

func TestGetPackagesByVenue(t *testing.T) {
	hall := newVenue("Grand Hall", "Banquet Hall")
	garden := newVenue("Rose Garden", "Garden")
	svc := NewService(newFakeRepo(hall, garden), cache.NewNoopService(), nil, logger.Discard())
	ctx := context.Background()

	_, err := svc.CreatePackage(ctx, packageRequest(hall.ID, "Hall", 100))
	require.NoError(t, err)

	byGarden, err := svc.GetPackagesByVenue(ctx, garden.ID)
	require.NoError(t, err)
	assert.NotNil(t, byGarden)
	assert.Empty(t, byGarden)

	byHall, err := svc.GetPackagesByVenue(ctx, hall.ID)
	require.NoError(t, err)
	assert.Len(t, byHall, 1)

	_, err = svc.GetPackagesByVenue(ctx, uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func TestSearchPackagesKeepsIndexOrder(t *testing.T) {
	hall := newVenue("Grand Hall", "Banquet Hall")
	index := newFakeIndex()
	svc := NewService(newFakeRepo(hall), cache.NewNoopService(), index, logger.Discard())
	ctx := context.Background()

	cheap, err := svc.CreatePackage(ctx, packageRequest(hall.ID, "Cheap", 100))
	require.NoError(t, err)
	pricey, err := svc.CreatePackage(ctx, packageRequest(hall.ID, "Pricey", 900))
	require.NoError(t, err)

	index.hits = []string{pricey.ID.String(), uuid.NewString(), cheap.ID.String()}

	result, err := svc.SearchPackages(ctx, SearchRequest{Query: "hall"})
	require.NoError(t, err)
	assert.Equal(t, "elasticsearch", result.Source)
	require.Len(t, result.Packages, 2)
	assert.Equal(t, pricey.ID, result.Packages[0].ID)
	assert.Equal(t, cheap.ID, result.Packages[1].ID)
}

func TestSearchPackagesFallsBackToDatabase(t *testing.T) {
	hall := newVenue("Grand Hall", "Banquet Hall")
	garden := newVenue("Rose Garden", "Garden")
	index := newFakeIndex()
	index.failing = true
	svc := NewService(newFakeRepo(hall, garden), cache.NewNoopService(), index, logger.Discard())
	ctx := context.Background()

	for i, name := range []string{"Garden A", "Garden B", "Garden C"} {
		_, err := svc.CreatePackage(ctx, packageRequest(garden.ID, name, int64(100*(i+1))))
		require.NoError(t, err)
	}
	_, err := svc.CreatePackage(ctx, packageRequest(hall.ID, "Hall", 50))
	require.NoError(t, err)

	result, err := svc.SearchPackages(ctx, SearchRequest{Query: "rose", Page: 2, PageSize: 2})
	require.NoError(t, err)

	assert.Equal(t, "database", result.Source)
	assert.Equal(t, int64(3), result.Total)
	require.Len(t, result.Packages, 1)
	assert.Equal(t, "Garden C", result.Packages[0].Name)
}
