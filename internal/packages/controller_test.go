package packages

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"venuebook/internal/shared/config"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hall := newVenue("Grand Hall", "Banquet Hall")
	garden := newVenue("Rose Garden", "Garden")
	svc := NewService(newFakeRepo(hall, garden), cache.NewNoopService(), nil, logger.Discard())

	ctx := context.Background()
	for _, req := range []PackageRequest{
		packageRequest(hall.ID, "Hall Starter", 100),
		packageRequest(garden.ID, "Garden Basic", 500),
		packageRequest(garden.ID, "Garden Budget", 80),
	} {
		_, err := svc.CreatePackage(ctx, req)
		require.NoError(t, err)
	}

	r := gin.New()
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret"}}
	SetupPackageRoutes(r.Group("/api/v1"), NewController(svc), cfg)
	return r, svc
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, into))
}

func TestFilterEndpoint(t *testing.T) {
	r, _ := setupRouter(t)

	body := `{"min_price":"90","venue_types":["Garden"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/packages/filter", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var pkgs []PackageResponse
	decode(t, w, &pkgs)
	require.Len(t, pkgs, 1)
	assert.Equal(t, "Garden Basic", pkgs[0].Name)
}

func TestFilterEndpointRejectsMalformedBody(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/packages/filter", strings.NewReader(`{"tiers":"gold"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFilterOptionsEndpoint(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/packages/filter-options", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var opts FilterOptions
	decode(t, w, &opts)
	assert.Equal(t, 3, opts.TotalPackages)
	assert.Equal(t, "80", opts.PriceRange.Min.String())
	assert.Len(t, opts.VenueTypes, 2)
}

func TestGetPackageUnknownIDIs404(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/packages/7b7f4c0e-0000-4000-8000-000000000000", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/packages/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/packages/7b7f4c0e-0000-4000-8000-000000000000", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
