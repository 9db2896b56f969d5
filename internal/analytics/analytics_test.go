package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"venuebook/internal/shared/apperr"
	"venuebook/internal/shared/config"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	breakdown []VenueBookingStats
	daily     []DailyBookingStats
	err       error
	lastRange DateRange
}

func (f *fakeRepo) GetVenueBreakdown(ctx context.Context, r DateRange) ([]VenueBookingStats, error) {
	f.lastRange = r
	return f.breakdown, f.err
}

func (f *fakeRepo) GetDailyBookingStats(ctx context.Context, r DateRange) ([]DailyBookingStats, error) {
	f.lastRange = r
	return f.daily, f.err
}

func sampleStats() []VenueBookingStats {
	return []VenueBookingStats{
		{VenueID: uuid.New(), VenueName: "Harbor Hall", TotalBookings: 3, ConfirmedBookings: 2, CanceledBookings: 1, Revenue: decimal.RequireFromString("2500.50")},
		{VenueID: uuid.New(), VenueName: "Rose Garden", TotalBookings: 1, ConfirmedBookings: 1, Revenue: decimal.RequireFromString("800")},
	}
}

func TestBuildOverview(t *testing.T) {
	overview := BuildOverview(DateRange{}, sampleStats())

	assert.Equal(t, 4, overview.TotalBookings)
	assert.Equal(t, 3, overview.ConfirmedBookings)
	assert.Equal(t, 1, overview.CanceledBookings)
	assert.True(t, decimal.RequireFromString("3300.50").Equal(overview.TotalRevenue))
	assert.InDelta(t, 25.0, overview.CancellationRate, 0.0001)
	assert.Len(t, overview.ByVenue, 2)
}

func TestBuildOverviewEmpty(t *testing.T) {
	overview := BuildOverview(DateRange{}, nil)
	assert.Zero(t, overview.TotalBookings)
	assert.Zero(t, overview.CancellationRate)
	assert.NotNil(t, overview.ByVenue)
}

func TestServicePropagatesRepositoryError(t *testing.T) {
	repo := &fakeRepo{err: apperr.Internal("boom", nil)}
	svc := NewService(repo, cache.NewNoopService(), logger.Discard())

	_, err := svc.GetBookingOverview(context.Background(), DateRange{})
	assert.Error(t, err)
}

func TestDailyStatsNeverNil(t *testing.T) {
	svc := NewService(&fakeRepo{}, cache.NewNoopService(), logger.Discard())
	stats, err := svc.GetDailyBookingStats(context.Background(), DateRange{})
	require.NoError(t, err)
	assert.NotNil(t, stats)
}

func adminToken(t *testing.T, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"role":    "Admin",
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestOverviewEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeRepo{breakdown: sampleStats()}
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret"}}

	r := gin.New()
	SetupAnalyticsRoutes(r.Group("/api/v1"), NewController(NewService(repo, cache.NewNoopService(), logger.Discard())), cfg)
	token := adminToken(t, "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/bookings/overview?start_date=2025-01-01&end_date=2025-01-31", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data BookingOverview `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Data.TotalBookings)

	require.NotNil(t, repo.lastRange.To)
	assert.Equal(t, time.Date(2025, 1, 31, 23, 59, 59, 999999000, time.UTC), *repo.lastRange.To)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analytics/bookings/overview?start_date=2025-02-01&end_date=2025-01-01", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analytics/bookings/overview", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
