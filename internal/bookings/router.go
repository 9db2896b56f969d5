package bookings

import (
	"venuebook/internal/shared/config"
	"venuebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking routes; every route requires a token
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(cfg))
	{
		bookings.POST("", controller.CreateBooking)
		bookings.GET("/availability/:venueId", controller.CheckAvailability)
		bookings.GET("/venue/:venueId", controller.GetBookingsByVenue)
		bookings.GET("/user/:userId", controller.GetBookingsByUser)
		bookings.GET("/user/:userId/date-range", controller.GetBookingsByUserAndDateRange)
		bookings.GET("/:id", controller.GetBooking)
		bookings.PUT("/:id/cancel", controller.CancelBooking)

		admin := bookings.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/all", controller.GetAllBookings)
			admin.GET("/date-range", controller.GetBookingsByDateRange)
		}
	}
}

// Route definitions for reference:
//
// POST   /api/v1/bookings                                   - create a booking (admins may pass user_id)
// GET    /api/v1/bookings/:id                               - booking detail (owner or admin)
// PUT    /api/v1/bookings/:id/cancel                        - cancel (owner or admin), idempotent
// GET    /api/v1/bookings/availability/:venueId             - ?start_time=2025-01-10&duration=2 (days)
// GET    /api/v1/bookings/venue/:venueId                    - non-canceled bookings by start time
// GET    /api/v1/bookings/user/:userId                      - newest first (self or admin)
// GET    /api/v1/bookings/user/:userId/date-range           - ?start_date=&end_date=
// GET    /api/v1/bookings/date-range                        - admin
// GET    /api/v1/bookings/all                               - admin
