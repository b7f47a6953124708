package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stocklens/backend/config"
)

// SetupRouter creates and configures the Gin router.
// metricsHandler is mounted at /metrics when non-nil.
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger, metricsHandler http.Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		v1.POST("/matches", handler.FindMatches)
		v1.POST("/scans/lookup", handler.LookupAndMatch)
		v1.POST("/enrichment/preview", handler.PreviewEnrichment)
	}

	return router
}
