// Package routes wires the HTTP handlers onto the Gin engine.
package routes

import (
	"github.com/gin-gonic/gin"

	"netwatch/internal/interfaces/http/handlers"
	"netwatch/internal/interfaces/http/middleware"
)

// UsageRouteConfig holds dependencies for the usage analytics routes
type UsageRouteConfig struct {
	UsageHandler  *handlers.UsageHandler
	UploadHandler *handlers.UploadHandler
	HealthHandler *handlers.HealthHandler
	RateLimiter   *middleware.RateLimiter
}

// SetupUsageRoutes configures the query, ingestion, and health routes
func SetupUsageRoutes(engine *gin.Engine, config *UsageRouteConfig) {
	engine.GET("/", config.HealthHandler.Check)

	v1 := engine.Group("/api/v1")
	if config.RateLimiter != nil {
		v1.Use(config.RateLimiter.Limit())
	}
	{
		users := v1.Group("/users")
		{
			users.GET("/top", config.UsageHandler.GetTopUsers)
			users.GET("/details", config.UsageHandler.GetUserDetails)
		}

		v1.POST("/upload", config.UploadHandler.Upload)
	}
}
