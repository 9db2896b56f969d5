package venues

import (
	"context"
	"strings"

	"venuebook/internal/shared/apperr"
	"venuebook/internal/shared/constants"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	// Venues
	CreateVenue(ctx context.Context, req VenueRequest) (*VenueResponse, error)
	UpdateVenue(ctx context.Context, id uuid.UUID, req VenueRequest) (*VenueResponse, error)
	DeleteVenue(ctx context.Context, id uuid.UUID) error
	GetVenueByID(ctx context.Context, id uuid.UUID) (*VenueResponse, error)
	GetAllVenues(ctx context.Context) ([]VenueResponse, error)

	// Additional services
	CreateAdditionalService(ctx context.Context, req AdditionalServiceRequest) (*AdditionalServiceResponse, error)
	UpdateAdditionalService(ctx context.Context, id uuid.UUID, req UpdateAdditionalServiceRequest) (*AdditionalServiceResponse, error)
	DeleteAdditionalService(ctx context.Context, id uuid.UUID) error
	GetAdditionalServiceByID(ctx context.Context, id uuid.UUID) (*AdditionalServiceResponse, error)
	GetAdditionalServicesByVenue(ctx context.Context, venueID uuid.UUID) ([]AdditionalServiceResponse, error)
	GetAllAdditionalServices(ctx context.Context) ([]AdditionalServiceResponse, error)
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service, log *logger.Logger) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
		log:   log.WithComponent("venues"),
	}
}

//  VENUES

func (s *service) CreateVenue(ctx context.Context, req VenueRequest) (*VenueResponse, error) {
	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	venue := &Venue{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Type:    strings.TrimSpace(req.Type),
		Status:  status,
		Rating:  0,
	}
	venue.Images = buildImages(venue.ID, req.ImageURLs)

	if err := s.repo.CreateVenue(ctx, venue); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	resp := ToVenueResponse(venue)
	return &resp, nil
}

func (s *service) UpdateVenue(ctx context.Context, id uuid.UUID, req VenueRequest) (*VenueResponse, error) {
	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	venue, err := s.repo.GetVenueByID(ctx, id)
	if err != nil {
		return nil, err
	}

	venue.Name = strings.TrimSpace(req.Name)
	venue.Address = strings.TrimSpace(req.Address)
	venue.Type = strings.TrimSpace(req.Type)
	venue.Status = status

	if err := s.repo.UpdateVenue(ctx, venue, buildImages(venue.ID, req.ImageURLs)); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	resp := ToVenueResponse(venue)
	return &resp, nil
}

func (s *service) DeleteVenue(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteVenue(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) GetVenueByID(ctx context.Context, id uuid.UUID) (*VenueResponse, error) {
	var resp VenueResponse
	err := s.cache.GetOrSet(ctx, constants.BuildVenueDetailKey(id.String()), constants.TTL_VENUE_DETAIL, func() (interface{}, error) {
		venue, err := s.repo.GetVenueByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return ToVenueResponse(venue), nil
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) GetAllVenues(ctx context.Context) ([]VenueResponse, error) {
	var resp []VenueResponse
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_VENUES_ALL, constants.TTL_VENUES_LIST, func() (interface{}, error) {
		venues, err := s.repo.ListVenues(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]VenueResponse, 0, len(venues))
		for i := range venues {
			out = append(out, ToVenueResponse(&venues[i]))
		}
		return out, nil
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		resp = []VenueResponse{}
	}
	return resp, nil
}

//  ADDITIONAL SERVICES

func (s *service) CreateAdditionalService(ctx context.Context, req AdditionalServiceRequest) (*AdditionalServiceResponse, error) {
	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, apperr.Validation("price must not be negative")
	}

	exists, err := s.repo.VenueExists(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("venue not found")
	}

	svc := &AdditionalService{
		VenueID:     req.VenueID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price.Round(2),
		Category:    category,
	}
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	created, err := s.repo.GetServiceByID(ctx, svc.ID)
	if err != nil {
		return nil, err
	}
	resp := ToAdditionalServiceResponse(created)
	return &resp, nil
}

func (s *service) UpdateAdditionalService(ctx context.Context, id uuid.UUID, req UpdateAdditionalServiceRequest) (*AdditionalServiceResponse, error) {
	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, apperr.Validation("price must not be negative")
	}

	svc, err := s.repo.GetServiceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	svc.Name = strings.TrimSpace(req.Name)
	svc.Description = strings.TrimSpace(req.Description)
	svc.Price = req.Price.Round(2)
	svc.Category = category

	if err := s.repo.UpdateService(ctx, svc); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	resp := ToAdditionalServiceResponse(svc)
	return &resp, nil
}

func (s *service) DeleteAdditionalService(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteService(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) GetAdditionalServiceByID(ctx context.Context, id uuid.UUID) (*AdditionalServiceResponse, error) {
	svc, err := s.repo.GetServiceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAdditionalServiceResponse(svc)
	return &resp, nil
}

func (s *service) GetAdditionalServicesByVenue(ctx context.Context, venueID uuid.UUID) ([]AdditionalServiceResponse, error) {
	services, err := s.repo.ListServicesByVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return toServiceResponses(services), nil
}

func (s *service) GetAllAdditionalServices(ctx context.Context) ([]AdditionalServiceResponse, error) {
	services, err := s.repo.ListAllServices(ctx)
	if err != nil {
		return nil, err
	}
	return toServiceResponses(services), nil
}

// invalidate drops venue listings and package results, which embed venue name and type
func (s *service) invalidate(ctx context.Context) {
	for _, pattern := range []string{constants.PATTERN_INVALIDATE_VENUES_ALL, constants.PATTERN_INVALIDATE_PACKAGES_ALL} {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			s.log.ErrorWithContext(ctx, "failed to invalidate cache", err, map[string]interface{}{"pattern": pattern})
		}
	}
}

func parseStatus(raw string) (VenueStatus, error) {
	if raw == "" {
		return VenueStatusAvailable, nil
	}
	status := VenueStatus(raw)
	if !status.IsValid() {
		return "", apperr.Validation("status must be Available, Booked or Maintenance")
	}
	return status, nil
}

func parseCategory(raw string) (ServiceCategory, error) {
	if raw == "" {
		return CategoryOther, nil
	}
	category := ServiceCategory(raw)
	if !category.IsValid() {
		return "", apperr.Validation("category must be Food, Decoration, Entertainment, Photography or Other")
	}
	return category, nil
}

func buildImages(venueID uuid.UUID, urls []string) []VenueImage {
	images := make([]VenueImage, 0, len(urls))
	for i, url := range urls {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		images = append(images, VenueImage{VenueID: venueID, URL: url, SortOrder: i})
	}
	return images
}

func toServiceResponses(services []AdditionalService) []AdditionalServiceResponse {
	out := make([]AdditionalServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, ToAdditionalServiceResponse(&services[i]))
	}
	return out
}
