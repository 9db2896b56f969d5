package packages

import (
	"context"
	"strings"
	"time"

	"venuebook/internal/search"
	"venuebook/internal/shared/apperr"
	"venuebook/internal/shared/constants"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"
	"venuebook/pkg/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SearchIndex is the full-text index packages are mirrored into
type SearchIndex interface {
	IndexPackage(ctx context.Context, doc search.PackageDocument) error
	DeletePackage(ctx context.Context, id string) error
	Search(ctx context.Context, query string, page, pageSize int) (*search.Result, error)
}

type Service interface {
	FilterPackages(ctx context.Context, criteria FilterCriteria) ([]PackageResponse, error)
	GetFilterOptions(ctx context.Context) (*FilterOptions, error)
	SearchPackages(ctx context.Context, req SearchRequest) (*SearchResponse, error)

	CreatePackage(ctx context.Context, req PackageRequest) (*PackageResponse, error)
	UpdatePackage(ctx context.Context, id uuid.UUID, req PackageRequest) (*PackageResponse, error)
	DeletePackage(ctx context.Context, id uuid.UUID) error
	GetPackageByID(ctx context.Context, id uuid.UUID) (*PackageResponse, error)
	GetPackagesByVenue(ctx context.Context, venueID uuid.UUID) ([]PackageResponse, error)
	GetAllPackages(ctx context.Context) ([]PackageResponse, error)
}

type service struct {
	repo  Repository
	cache cache.Service
	index SearchIndex // nil when search is disabled
	log   *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service, index SearchIndex, log *logger.Logger) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
		index: index,
		log:   log.WithComponent("packages"),
	}
}

//  FILTER ENGINE

func (s *service) FilterPackages(ctx context.Context, criteria FilterCriteria) ([]PackageResponse, error) {
	defer metrics.ObserveSince(metrics.PackageFilterDuration, time.Now())

	candidates, err := s.repo.FindActive(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return toPackageResponses(FilterPackages(candidates, criteria)), nil
}

func (s *service) GetFilterOptions(ctx context.Context) (*FilterOptions, error) {
	var opts FilterOptions
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_PACKAGE_FILTER_OPTION, constants.TTL_FILTER_OPTIONS, func() (interface{}, error) {
		pkgs, err := s.repo.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		return BuildFilterOptions(pkgs), nil
	}, &opts)
	if err != nil {
		return nil, err
	}
	return &opts, nil
}

// SearchPackages ranks packages through the search index, or falls back to the filter engine's text match
func (s *service) SearchPackages(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	page, pageSize := search.NormalizePage(req.Page, req.PageSize)
	query := strings.TrimSpace(req.Query)

	if s.index != nil {
		resp, err := s.searchIndex(ctx, query, page, pageSize)
		if err == nil {
			return resp, nil
		}
		s.log.ErrorWithContext(ctx, "package search failed, using database", err, map[string]interface{}{"query": query})
	}

	all, err := s.FilterPackages(ctx, FilterCriteria{SearchTerm: query})
	if err != nil {
		return nil, err
	}

	start := min((page-1)*pageSize, len(all))
	end := min(start+pageSize, len(all))
	return &SearchResponse{
		Packages: all[start:end],
		Total:    int64(len(all)),
		Page:     page,
		PageSize: pageSize,
		Source:   "database",
	}, nil
}

func (s *service) searchIndex(ctx context.Context, query string, page, pageSize int) (*SearchResponse, error) {
	result, err := s.index.Search(ctx, query, page, pageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(result.IDs))
	for _, raw := range result.IDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}

	pkgs, err := s.repo.ListActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// keep the index's relevance order; drop hits that are no longer active
	byID := make(map[uuid.UUID]*VenuePackage, len(pkgs))
	for i := range pkgs {
		byID[pkgs[i].ID] = &pkgs[i]
	}
	ordered := make([]PackageResponse, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, ToPackageResponse(p))
		}
	}

	return &SearchResponse{
		Packages: ordered,
		Total:    result.Total,
		Page:     page,
		PageSize: pageSize,
		Source:   "elasticsearch",
	}, nil
}

//  CATALOG

func (s *service) CreatePackage(ctx context.Context, req PackageRequest) (*PackageResponse, error) {
	if err := validatePrices(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.VenueExists(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("venue not found")
	}

	pkg := &VenuePackage{ID: uuid.New(), IsActive: true}
	applyRequest(pkg, req)
	pkg.Services = buildServices(pkg.ID, req.Services)

	if err := s.repo.Create(ctx, pkg); err != nil {
		return nil, err
	}

	return s.afterWrite(ctx, pkg.ID, "created")
}

func (s *service) UpdatePackage(ctx context.Context, id uuid.UUID, req PackageRequest) (*PackageResponse, error) {
	if err := validatePrices(req); err != nil {
		return nil, err
	}

	pkg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.VenueID != pkg.VenueID {
		exists, err := s.repo.VenueExists(ctx, req.VenueID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.NotFound("venue not found")
		}
	}

	applyRequest(pkg, req)
	pkg.Venue = nil
	if err := s.repo.Update(ctx, pkg, buildServices(pkg.ID, req.Services)); err != nil {
		return nil, err
	}

	return s.afterWrite(ctx, pkg.ID, "updated")
}

func (s *service) DeletePackage(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	if s.index != nil {
		if err := s.index.DeletePackage(ctx, id.String()); err != nil {
			s.log.ErrorWithContext(ctx, "failed to remove package from search index", err, map[string]interface{}{"package_id": id.String()})
		}
	}
	s.log.LogPackageChanged(ctx, id.String(), "deleted")
	return nil
}

func (s *service) GetPackageByID(ctx context.Context, id uuid.UUID) (*PackageResponse, error) {
	pkg, err := s.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPackageResponse(pkg)
	return &resp, nil
}

func (s *service) GetPackagesByVenue(ctx context.Context, venueID uuid.UUID) ([]PackageResponse, error) {
	exists, err := s.repo.VenueExists(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("venue not found")
	}

	var resp []PackageResponse
	err = s.cache.GetOrSet(ctx, constants.BuildPackagesByVenueKey(venueID.String()), constants.TTL_PACKAGES_BY_VENUE, func() (interface{}, error) {
		pkgs, err := s.repo.ListActiveByVenue(ctx, venueID)
		if err != nil {
			return nil, err
		}
		return toPackageResponses(pkgs), nil
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		resp = []PackageResponse{}
	}
	return resp, nil
}

func (s *service) GetAllPackages(ctx context.Context) ([]PackageResponse, error) {
	var resp []PackageResponse
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_PACKAGES_ACTIVE_ALL, constants.TTL_PACKAGES_ACTIVE, func() (interface{}, error) {
		pkgs, err := s.repo.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		return toPackageResponses(pkgs), nil
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		resp = []PackageResponse{}
	}
	return resp, nil
}

// afterWrite reloads the package, drops cached listings and mirrors it into the search index
func (s *service) afterWrite(ctx context.Context, id uuid.UUID, action string) (*PackageResponse, error) {
	s.invalidate(ctx)

	pkg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.index != nil {
		var indexErr error
		if pkg.IsActive {
			indexErr = s.index.IndexPackage(ctx, ToDocument(pkg))
		} else {
			indexErr = s.index.DeletePackage(ctx, pkg.ID.String())
		}
		if indexErr != nil {
			s.log.ErrorWithContext(ctx, "failed to sync package to search index", indexErr, map[string]interface{}{"package_id": pkg.ID.String()})
		}
	}

	s.log.LogPackageChanged(ctx, pkg.ID.String(), action)

	resp := ToPackageResponse(pkg)
	return &resp, nil
}

func (s *service) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PACKAGES_ALL); err != nil {
		s.log.ErrorWithContext(ctx, "failed to invalidate package cache", err, nil)
	}
}

// ToDocument flattens a package and its venue into a search document
func ToDocument(p *VenuePackage) search.PackageDocument {
	doc := search.PackageDocument{
		ID:           p.ID.String(),
		VenueID:      p.VenueID.String(),
		Name:         p.Name,
		Description:  p.Description,
		Tier:         int(p.Tier),
		TierName:     p.Tier.String(),
		Services:     make([]string, 0, len(p.Services)),
		BasePrice:    p.BasePrice.InexactFloat64(),
		BaseCapacity: p.BaseCapacity,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Venue != nil {
		doc.VenueName = p.Venue.Name
		doc.VenueType = p.Venue.Type
	}
	descriptions := make([]string, 0, len(p.Services))
	for _, svc := range p.Services {
		doc.Services = append(doc.Services, svc.Name)
		if svc.Description != "" {
			descriptions = append(descriptions, svc.Description)
		}
	}
	doc.ServiceText = strings.Join(descriptions, " ")
	return doc
}

func validatePrices(req PackageRequest) error {
	if !req.Tier.IsValid() {
		return apperr.Validation("tier must be between 1 (Basic) and 4 (Custom)")
	}
	for name, price := range map[string]decimal.Decimal{
		"base_price":                  req.BasePrice,
		"price_per_additional_person": req.PricePerAdditionalPerson,
		"price_per_additional_hour":   req.PricePerAdditionalHour,
	} {
		if price.IsNegative() {
			return apperr.Validation(name + " must not be negative")
		}
	}
	for _, svc := range req.Services {
		if svc.Price.IsNegative() {
			return apperr.Validation("package service price must not be negative")
		}
	}
	return nil
}

func applyRequest(pkg *VenuePackage, req PackageRequest) {
	pkg.VenueID = req.VenueID
	pkg.Name = strings.TrimSpace(req.Name)
	pkg.Description = strings.TrimSpace(req.Description)
	pkg.Tier = req.Tier
	pkg.BaseCapacity = req.BaseCapacity
	pkg.BaseDurationHours = req.BaseDurationHours
	pkg.BasePrice = req.BasePrice.Round(2)
	pkg.PricePerAdditionalPerson = req.PricePerAdditionalPerson.Round(2)
	pkg.PricePerAdditionalHour = req.PricePerAdditionalHour.Round(2)
	pkg.IncludesDecoration = req.IncludesDecoration
	pkg.IncludesCake = req.IncludesCake
	pkg.IncludesSoundSystem = req.IncludesSoundSystem
	pkg.IncludedServicesDescription = strings.TrimSpace(req.IncludedServicesDescription)
}

func buildServices(packageID uuid.UUID, reqs []PackageServiceRequest) []PackageService {
	services := make([]PackageService, 0, len(reqs))
	for _, r := range reqs {
		services = append(services, PackageService{
			ID:                          uuid.New(),
			PackageID:                   packageID,
			Name:                        strings.TrimSpace(r.Name),
			Description:                 strings.TrimSpace(r.Description),
			Price:                       r.Price.Round(2),
			IsIncludedInPackage:         r.IsIncludedInPackage,
			IsAvailableForCustomization: r.IsAvailableForCustomization,
		})
	}
	return services
}
