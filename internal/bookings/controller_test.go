package bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"venuebook/internal/shared/config"
	"venuebook/internal/users"
	"venuebook/internal/venues"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testServer struct {
	router *gin.Engine
	svc    Service
	repo   *fakeRepo
	venue  *venues.Venue
	alice  *users.User
	bob    *users.User
	admin  *users.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeRepo()
	svc := NewService(repo, NewNoopVenueLock(), &recordingPublisher{}, cache.NewNoopService(), logger.Discard())
	ts := &testServer{
		svc:   svc,
		repo:  repo,
		venue: repo.addVenue("Harbor Hall", venues.VenueStatusAvailable),
		alice: repo.addUser("alice"),
		bob:   repo.addUser("bob"),
		admin: repo.addUser("root"),
	}
	ts.admin.Role = users.RoleAdmin

	r := gin.New()
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	SetupBookingRoutes(r.Group("/api/v1"), NewController(svc), cfg)
	ts.router = r
	return ts
}

func (ts *testServer) token(t *testing.T, u *users.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"email":   u.Email,
		"role":    string(u.Role),
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (ts *testServer) do(t *testing.T, method, path string, as *users.User, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+ts.token(t, as))
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) book(t *testing.T, u *users.User, start string) uuid.UUID {
	t.Helper()
	resp, err := ts.svc.CreateBooking(context.Background(), u.ID, CreateBookingRequest{
		VenueID:       ts.venue.ID,
		StartTime:     start,
		DurationHours: intPtr(1),
	})
	require.NoError(t, err)
	return resp.ID
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, into))
}

func TestCreateBookingEndpoint(t *testing.T) {
	ts := newTestServer(t)

	body := `{"venue_id":"` + ts.venue.ID.String() + `","start_time":"2025-01-10","duration_hours":2}`
	w := ts.do(t, http.MethodPost, "/api/v1/bookings", ts.alice, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got BookingDetailResponse
	decode(t, w, &got)
	assert.Equal(t, ts.alice.ID, got.UserID)
	assert.Equal(t, StatusConfirmed, got.Status)
	assert.Equal(t, "2025-01-11", got.EndTime.Format(dateLayout))

	w = ts.do(t, http.MethodPost, "/api/v1/bookings", ts.alice, body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateBookingEndpointValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/bookings", ts.alice, `{"start_time":"2025-01-10"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/bookings", ts.alice, `{"venue_id":"`+ts.venue.ID.String()+`","start_time":"2025-01-10","duration_hours":3000000}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/bookings", nil, `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateBookingOnBehalfRequiresAdmin(t *testing.T) {
	ts := newTestServer(t)
	body := `{"venue_id":"` + ts.venue.ID.String() + `","user_id":"` + ts.bob.ID.String() + `","start_time":"2025-01-10","duration_hours":1}`

	w := ts.do(t, http.MethodPost, "/api/v1/bookings", ts.alice, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/bookings", ts.admin, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var got BookingDetailResponse
	decode(t, w, &got)
	assert.Equal(t, ts.bob.ID, got.UserID)
}

func TestGetBookingOwnership(t *testing.T) {
	ts := newTestServer(t)
	id := ts.book(t, ts.alice, "2025-01-10")
	path := "/api/v1/bookings/" + id.String()

	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, path, ts.alice, "").Code)
	assert.Equal(t, http.StatusForbidden, ts.do(t, http.MethodGet, path, ts.bob, "").Code)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, path, ts.admin, "").Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/v1/bookings/"+uuid.NewString(), ts.alice, "").Code)
}

func TestCancelBookingEndpoint(t *testing.T) {
	ts := newTestServer(t)
	id := ts.book(t, ts.alice, "2025-01-10")
	path := "/api/v1/bookings/" + id.String() + "/cancel"

	assert.Equal(t, http.StatusForbidden, ts.do(t, http.MethodPut, path, ts.bob, "").Code)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodPut, path, ts.alice, "").Code)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodPut, path, ts.alice, "").Code)
}

func TestAvailabilityEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.book(t, ts.alice, "2025-01-10")
	base := "/api/v1/bookings/availability/" + ts.venue.ID.String()

	w := ts.do(t, http.MethodGet, base+"?start_time=2025-01-10&duration=1", ts.bob, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got AvailabilityResponse
	decode(t, w, &got)
	assert.False(t, got.IsAvailable)
	assert.Equal(t, []string{"2025-01-10"}, got.BookedDates)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, base+"?start_time=2025-01-10&duration=0", ts.bob, "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, base+"?start_time=2025-01-10&duration=1e-12", ts.bob, "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, base+"?start_time=2025-01-10&duration=366", ts.bob, "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, base+"?start_time=soon&duration=1", ts.bob, "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, base, ts.bob, "").Code)
}

func TestUserBookingsEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.book(t, ts.alice, "2025-01-10")
	ts.book(t, ts.alice, "2025-02-10")
	ts.book(t, ts.bob, "2025-01-20")

	mine := "/api/v1/bookings/user/" + ts.alice.ID.String()
	w := ts.do(t, http.MethodGet, mine, ts.alice, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []BookingResponse
	decode(t, w, &list)
	assert.Len(t, list, 2)

	assert.Equal(t, http.StatusForbidden, ts.do(t, http.MethodGet, mine, ts.bob, "").Code)

	w = ts.do(t, http.MethodGet, mine+"/date-range?start_date=2025-01-01&end_date=2025-01-31", ts.alice, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &list)
	assert.Len(t, list, 1)

	// a date-only end covers the whole day
	w = ts.do(t, http.MethodGet, mine+"/date-range?start_date=2025-01-01&end_date=2025-01-10", ts.alice, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	assert.Len(t, list, 1)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, mine+"/date-range?start_date=2025-01-01", ts.alice, "").Code)
}

func TestAdminOnlyEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.book(t, ts.alice, "2025-01-10")
	ts.book(t, ts.bob, "2025-01-20")

	assert.Equal(t, http.StatusForbidden, ts.do(t, http.MethodGet, "/api/v1/bookings/all", ts.alice, "").Code)

	w := ts.do(t, http.MethodGet, "/api/v1/bookings/all", ts.admin, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []BookingResponse
	decode(t, w, &list)
	assert.Len(t, list, 2)

	w = ts.do(t, http.MethodGet, "/api/v1/bookings/date-range?start_date=2025-01-15&end_date=2025-01-31", ts.admin, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, ts.bob.ID, list[0].UserID)

	w = ts.do(t, http.MethodGet, "/api/v1/bookings/venue/"+ts.venue.ID.String(), ts.alice, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
