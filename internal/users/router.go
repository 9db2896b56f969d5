package users

import (
	"venuebook/internal/shared/config"
	"venuebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers the admin-only user management routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.JWTAuth(r.config), middleware.RequireAdmin())
	{
		users.GET("", r.controller.GetAllUsers)
		users.GET("/:id", r.controller.GetUserDetails)
		users.PUT("/:id", r.controller.UpdateUser)
	}
}
