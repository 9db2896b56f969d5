package packages

import (
	"venuebook/internal/shared/config"
	"venuebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPackageRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	packages := rg.Group("/packages")
	{
		// Public catalog
		packages.GET("", controller.GetAllPackages)
		packages.GET("/filter-options", controller.GetFilterOptions)
		packages.GET("/search", controller.SearchPackages)
		packages.POST("/filter", controller.FilterPackages)
		packages.GET("/venue/:venueId", controller.GetPackagesByVenue)
		packages.GET("/:id", controller.GetPackage)

		admin := packages.Group("")
		admin.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
		{
			admin.POST("", controller.CreatePackage)
			admin.PUT("/:id", controller.UpdatePackage)
			admin.DELETE("/:id", controller.DeletePackage)
		}
	}
}
