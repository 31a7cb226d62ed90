package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/labeler/api/catalog"
	"github.com/killallgit/labeler/api/health"
	"github.com/killallgit/labeler/api/session"
	"github.com/killallgit/labeler/api/types"
	"github.com/killallgit/labeler/api/version"
	"github.com/killallgit/labeler/api/videos"
	_ "github.com/killallgit/labeler/docs/swagger"
	"github.com/killallgit/labeler/internal/metrics"
	labelcatalog "github.com/killallgit/labeler/internal/services/catalog"
	"github.com/killallgit/labeler/internal/services/export"
	"github.com/killallgit/labeler/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, cfg *config.Config, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Initialize services if not already set
	if deps.Catalog == nil {
		deps.Catalog = labelcatalog.Default()
	}
	if deps.Exporter == nil {
		deps.Exporter = export.NewExporter()
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, cfg.Monitoring.HealthPath, deps)
	version.RegisterRoutes(engine, deps)

	if cfg.Monitoring.Enabled {
		path := cfg.Monitoring.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		engine.GET(path, gin.WrapH(metrics.Handler()))
	}

	// Swagger documentation
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/docs/doc.json")))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")
	if cfg.RateLimiting.Enabled {
		v1.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized,
			cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.Burst))
	}

	session.RegisterRoutes(v1.Group("/session"), deps)
	catalog.RegisterRoutes(v1.Group("/catalog"), deps)

	// The registry needs a database
	if deps.DB != nil && deps.DB.DB != nil && deps.Videos != nil {
		videos.RegisterRoutes(v1.Group("/videos"), deps)
	}

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  types.StatusError,
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
