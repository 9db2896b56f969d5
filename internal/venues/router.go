package venues

import (
	"venuebook/internal/shared/config"
	"venuebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupVenueRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	venues := rg.Group("/venues")
	{
		venues.GET("", controller.GetVenues)    // GET /api/v1/venues
		venues.GET("/:id", controller.GetVenue) // GET /api/v1/venues/:id

		admin := venues.Group("")
		admin.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
		{
			admin.POST("", controller.CreateVenue)
			admin.PUT("/:id", controller.UpdateVenue)
			admin.DELETE("/:id", controller.DeleteVenue)
		}
	}

	services := rg.Group("/additional-services")
	{
		services.GET("/all", controller.GetAllAdditionalServices)                // GET /api/v1/additional-services/all
		services.GET("/venue/:venueId", controller.GetAdditionalServicesByVenue) // GET /api/v1/additional-services/venue/:venueId
		services.GET("/:id", controller.GetAdditionalService)

		admin := services.Group("")
		admin.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
		{
			admin.POST("", controller.CreateAdditionalService)
			admin.PUT("/:id", controller.UpdateAdditionalService)
			admin.DELETE("/:id", controller.DeleteAdditionalService)
		}
	}
}
