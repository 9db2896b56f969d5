package routes

import (
	"context"
	"net/http"
	"time"

	"venuebook/internal/analytics"
	"venuebook/internal/auth"
	"venuebook/internal/bookings"
	"venuebook/internal/notifications"
	"venuebook/internal/packages"
	"venuebook/internal/search"
	"venuebook/internal/shared/config"
	"venuebook/internal/shared/database"
	"venuebook/internal/users"
	"venuebook/internal/venues"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"
	"venuebook/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	cache     cache.Service
	publisher notifications.Publisher
	log       *logger.Logger
}

// NewRouter creates a new router instance. publisher carries booking events to Kafka
// or drops them when streaming is disabled.
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher, log *logger.Logger) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		cache:     cache.NewService(db.Redis, log),
		publisher: publisher,
		log:       log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	if r.config.Metrics.Enabled {
		engine.Use(metrics.Middleware())
		engine.GET(r.config.Metrics.Path, metrics.Handler())
	}

	r.setupHealthRoutes(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupUserRoutes(api)
		r.setupVenueRoutes(api)
		r.setupPackageRoutes(api)
		r.setupBookingRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "venuebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "venuebook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "operational",
			"api_version":   r.config.APIVersion,
			"kafka":         r.config.Kafka.Enabled,
			"elasticsearch": r.config.Elasticsearch.Enabled,
			"timestamp":     time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.PostgreSQL)
	authService := auth.NewService(authRepo, r.config, r.log)
	authController := auth.NewController(authService)

	auth.NewRouter(authController, r.config).SetupRoutes(rg)
}

func (r *Router) setupUserRoutes(rg *gin.RouterGroup) {
	userRepo := users.NewRepository(r.db.PostgreSQL)
	userService := users.NewService(userRepo)
	userController := users.NewController(userService)

	users.NewRouter(userController, r.config).SetupRoutes(rg)
}

func (r *Router) setupVenueRoutes(rg *gin.RouterGroup) {
	venueRepo := venues.NewRepository(r.db.PostgreSQL)
	venueService := venues.NewService(venueRepo, r.cache, r.log)
	venueController := venues.NewController(venueService)

	venues.SetupVenueRoutes(rg, venueController, r.config)
}

func (r *Router) setupPackageRoutes(rg *gin.RouterGroup) {
	// a nil *ElasticsearchClient must not end up inside the interface
	var index packages.SearchIndex
	if r.config.Elasticsearch.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		es, err := search.NewElasticsearchClient(ctx, r.config.Elasticsearch, r.log)
		if err != nil {
			r.log.Error("Elasticsearch unavailable, package search falls back to the database", "error", err)
		} else {
			index = es
		}
	}

	packageRepo := packages.NewRepository(r.db.PostgreSQL)
	packageService := packages.NewService(packageRepo, r.cache, index, r.log)
	packageController := packages.NewController(packageService)

	packages.SetupPackageRoutes(rg, packageController, r.config)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	locker := bookings.NewNoopVenueLock()
	if r.config.Booking.VenueLockEnabled && r.db.Redis != nil {
		locker = bookings.NewRedisVenueLock(r.db.Redis, r.config.Booking.VenueLockTTL, r.config.Booking.VenueLockWait)
	}

	bookingRepo := bookings.NewRepository(r.db.PostgreSQL)
	bookingService := bookings.NewService(bookingRepo, locker, r.publisher, r.cache, r.log)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController, r.config)
}

func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.PostgreSQL)
	analyticsService := analytics.NewService(analyticsRepo, r.cache, r.log)
	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController, r.config)
}
