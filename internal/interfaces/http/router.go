// Package http assembles the Gin engine: repositories, use cases,
// handlers, and middleware.
package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	ingestionUC "netwatch/internal/application/ingestion/usecases"
	usageUC "netwatch/internal/application/usage/usecases"
	"netwatch/internal/infrastructure/config"
	"netwatch/internal/infrastructure/repository"
	"netwatch/internal/interfaces/http/handlers"
	"netwatch/internal/interfaces/http/middleware"
	"netwatch/internal/interfaces/http/routes"
	"netwatch/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine *gin.Engine
}

// NewRouter creates a new HTTP router with all dependencies wired.
// redisClient may be nil when rate limiting is disabled.
func NewRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client, log logger.Interface) *Router {
	switch cfg.Server.Mode {
	case "release", "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.Recovery())
	engine.Use(middleware.ErrorHandler())
	if len(cfg.Server.AllowedOrigins) > 0 {
		engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	}

	sessionRepo := repository.NewSessionRepository(db, log)

	getTopUsersUC := usageUC.NewGetTopUsersUseCase(sessionRepo, log)
	getUserDetailsUC := usageUC.NewGetUserDetailsUseCase(sessionRepo, log)
	ingestCSVUC := ingestionUC.NewIngestCSVUseCase(sessionRepo, log)

	usageHandler := handlers.NewUsageHandler(getTopUsersUC, getUserDetailsUC, log)
	uploadHandler := handlers.NewUploadHandler(ingestCSVUC, log)
	healthHandler := handlers.NewHealthHandler()

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled && redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(
			redisClient,
			cfg.RateLimit.Requests,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
		)
	}

	routes.SetupUsageRoutes(engine, &routes.UsageRouteConfig{
		UsageHandler:  usageHandler,
		UploadHandler: uploadHandler,
		HealthHandler: healthHandler,
		RateLimiter:   rateLimiter,
	})

	return &Router{engine: engine}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	if err := r.engine.Run(addr); err != nil {
		return fmt.Errorf("http server stopped: %w", err)
	}
	return nil
}
