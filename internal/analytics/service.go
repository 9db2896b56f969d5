package analytics

import (
	"context"
	"time"

	"venuebook/internal/shared/constants"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"
)

type Service interface {
	GetBookingOverview(ctx context.Context, r DateRange) (*BookingOverview, error)
	GetDailyBookingStats(ctx context.Context, r DateRange) ([]DailyBookingStats, error)
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service, log *logger.Logger) Service {
	return &service{repo: repo, cache: cacheService, log: log.WithComponent("analytics")}
}

func rangeKeyPart(t *time.Time) string {
	if t == nil {
		return "open"
	}
	return t.Format(time.RFC3339)
}

// GetBookingOverview is cached per range; booking writes drop every analytics key
func (s *service) GetBookingOverview(ctx context.Context, r DateRange) (*BookingOverview, error) {
	key := constants.BuildBookingOverviewKey(rangeKeyPart(r.From), rangeKeyPart(r.To))

	var overview BookingOverview
	err := s.cache.GetOrSet(ctx, key, constants.TTL_ANALYTICS_BOOKINGS, func() (interface{}, error) {
		stats, err := s.repo.GetVenueBreakdown(ctx, r)
		if err != nil {
			return nil, err
		}
		return BuildOverview(r, stats), nil
	}, &overview)
	if err != nil {
		s.log.ErrorWithContext(ctx, "failed to build booking overview", err, nil)
		return nil, err
	}
	return &overview, nil
}

func (s *service) GetDailyBookingStats(ctx context.Context, r DateRange) ([]DailyBookingStats, error) {
	stats, err := s.repo.GetDailyBookingStats(ctx, r)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []DailyBookingStats{}
	}
	return stats, nil
}
