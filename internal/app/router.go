package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taxidash/internal/handler"
	"taxidash/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	DashboardHandler *handler.DashboardHandler
	ChartHandler     *handler.ChartHandler
	ImportHandler    *handler.ImportHandler
	RedisClient      *redis.Client // nil disables idempotency
	NewRelicApp      *newrelic.Application
	Logger           *zap.Logger
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		v1.GET("/dashboard", deps.DashboardHandler.GetDashboard)
		v1.GET("/metrics/summary", deps.DashboardHandler.GetSummary)
		v1.GET("/charts/:name", deps.ChartHandler.GetChart)

		// Trip routes.
		trips := v1.Group("/trips")
		{
			trips.GET("", deps.DashboardHandler.GetTrips)
			trips.GET("/:id", deps.DashboardHandler.GetTrip)
			trips.POST("/import", middleware.IdempotencyMiddleware(deps.RedisClient, logger), deps.ImportHandler.ImportTrips)
		}

		// Analytics routes.
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/outliers", deps.DashboardHandler.GetOutliers)
			analytics.GET("/zones", deps.DashboardHandler.GetZones)
		}
	}

	return router
}
