package analytics

import (
	"net/http"
	"time"

	"venuebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// parseRange reads optional start_date and end_date (YYYY-MM-DD). end_date is inclusive.
func parseRange(c *gin.Context) (DateRange, bool) {
	var r DateRange
	if raw := c.Query("start_date"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD", nil, err.Error())
			return r, false
		}
		r.From = &from
	}
	if raw := c.Query("end_date"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD", nil, err.Error())
			return r, false
		}
		to = to.AddDate(0, 0, 1).Add(-time.Microsecond)
		r.To = &to
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		response.RespondJSON(c, "error", http.StatusBadRequest, "end_date must not be before start_date", nil, nil)
		return r, false
	}
	return r, true
}

// GetBookingOverview godoc
// @Summary Booking totals and per-venue breakdown
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD, inclusive"
// @Success 200 {object} response.StandardApiResponse
// @Router /analytics/bookings/overview [get]
func (ctrl *Controller) GetBookingOverview(c *gin.Context) {
	r, ok := parseRange(c)
	if !ok {
		return
	}

	overview, err := ctrl.service.GetBookingOverview(c.Request.Context(), r)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking overview retrieved successfully", overview, nil)
}

func (ctrl *Controller) GetDailyBookingStats(c *gin.Context) {
	r, ok := parseRange(c)
	if !ok {
		return
	}
	if r.From == nil {
		from := time.Now().UTC().AddDate(0, 0, -30).Truncate(24 * time.Hour)
		r.From = &from
	}

	stats, err := ctrl.service.GetDailyBookingStats(c.Request.Context(), r)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Daily booking statistics retrieved successfully", stats, nil)
}
