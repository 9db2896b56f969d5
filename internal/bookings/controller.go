package bookings

import (
	"net/http"
	"strings"
	"time"

	"venuebook/internal/shared/apperr"
	"venuebook/internal/shared/middleware"
	"venuebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{service: service, validator: validator.New()}
}

func principal(ctx *gin.Context) (middleware.Principal, bool) {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
	}
	return p, ok
}

// CreateBooking godoc
// @Summary Book a venue
// @Description Books whole days starting at start_time. Admins may book for another user via user_id.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBookingRequest true "booking request"
// @Success 201 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse
// @Router /bookings [post]
func (c *Controller) CreateBooking(ctx *gin.Context) {
	caller, ok := principal(ctx)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	userID := caller.UserID
	if req.UserID != nil && *req.UserID != caller.UserID {
		if !caller.IsAdmin() {
			response.RespondError(ctx, apperr.Forbidden("only admins can book for another user"))
			return
		}
		userID = *req.UserID
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

// GetBooking godoc
// @Summary Get a booking with its cost breakdown
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "booking id"
// @Success 200 {object} response.StandardApiResponse
// @Router /bookings/{id} [get]
func (c *Controller) GetBooking(ctx *gin.Context) {
	caller, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := response.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	booking, err := c.service.GetBookingByID(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	if !caller.CanAccessUser(booking.UserID) {
		response.RespondError(ctx, apperr.Forbidden("access denied"))
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

// CancelBooking godoc
// @Summary Cancel a booking
// @Description Canceling an already canceled booking succeeds.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "booking id"
// @Success 200 {object} response.StandardApiResponse
// @Router /bookings/{id}/cancel [put]
func (c *Controller) CancelBooking(ctx *gin.Context) {
	caller, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := response.ParseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	booking, err := c.service.GetBookingByID(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	if !caller.CanAccessUser(booking.UserID) {
		response.RespondError(ctx, apperr.Forbidden("access denied"))
		return
	}

	if err := c.service.CancelBooking(ctx.Request.Context(), id); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking canceled successfully", nil, nil)
}

// CheckAvailability godoc
// @Summary Check whether a venue is free for a number of days
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param venueId path string true "venue id"
// @Param start_time query string true "start time (RFC 3339 or YYYY-MM-DD)"
// @Param duration query number true "duration in days"
// @Success 200 {object} response.StandardApiResponse
// @Router /bookings/availability/{venueId} [get]
func (c *Controller) CheckAvailability(ctx *gin.Context) {
	venueID, ok := response.ParseUUIDParam(ctx, "venueId")
	if !ok {
		return
	}

	var query AvailabilityQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}
	start, err := ParseTimestamp(query.StartTime)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid start_time", nil, err.Error())
		return
	}

	availability, err := c.service.CheckAvailability(ctx.Request.Context(), venueID, start, query.Duration)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability checked successfully", availability, nil)
}

func (c *Controller) GetBookingsByVenue(ctx *gin.Context) {
	venueID, ok := response.ParseUUIDParam(ctx, "venueId")
	if !ok {
		return
	}

	bookings, err := c.service.GetBookingsByVenue(ctx.Request.Context(), venueID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

func (c *Controller) GetBookingsByUser(ctx *gin.Context) {
	userID, ok := c.accessibleUser(ctx)
	if !ok {
		return
	}

	bookings, err := c.service.GetBookingsByUser(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

func (c *Controller) GetBookingsByUserAndDateRange(ctx *gin.Context) {
	userID, ok := c.accessibleUser(ctx)
	if !ok {
		return
	}
	from, to, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	bookings, err := c.service.GetBookingsByUserAndDateRange(ctx.Request.Context(), userID, from, to)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

func (c *Controller) GetBookingsByDateRange(ctx *gin.Context) {
	from, to, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	bookings, err := c.service.GetBookingsByDateRange(ctx.Request.Context(), from, to)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

func (c *Controller) GetAllBookings(ctx *gin.Context) {
	bookings, err := c.service.GetAllBookings(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

// accessibleUser reads :userId and checks the caller may see that user's bookings
func (c *Controller) accessibleUser(ctx *gin.Context) (uuid.UUID, bool) {
	caller, ok := principal(ctx)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := response.ParseUUIDParam(ctx, "userId")
	if !ok {
		return uuid.Nil, false
	}
	if !caller.CanAccessUser(userID) {
		response.RespondError(ctx, apperr.Forbidden("access denied"))
		return uuid.Nil, false
	}
	return userID, true
}

// parseDateRange reads start_date and end_date. A date-only end_date covers that whole day.
func parseDateRange(ctx *gin.Context) (time.Time, time.Time, bool) {
	var query DateRangeQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "start_date and end_date are required", nil, err.Error())
		return time.Time{}, time.Time{}, false
	}

	from, err := ParseTimestamp(query.StartDate)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid start_date", nil, err.Error())
		return time.Time{}, time.Time{}, false
	}
	to, err := ParseTimestamp(query.EndDate)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid end_date", nil, err.Error())
		return time.Time{}, time.Time{}, false
	}
	if len(strings.TrimSpace(query.EndDate)) == len(dateLayout) {
		to = EndTimeFor(to, 1)
	}
	return from, to, true
}
