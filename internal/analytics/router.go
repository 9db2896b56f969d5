package analytics

import (
	"venuebook/internal/shared/config"
	"venuebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	analytics := rg.Group("/analytics")
	analytics.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())

	bookings := analytics.Group("/bookings")
	{
		bookings.GET("/overview", controller.GetBookingOverview) // ?start_date=&end_date=
		bookings.GET("/daily", controller.GetDailyBookingStats)  // defaults to the last 30 days
	}
}
