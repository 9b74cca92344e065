package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"netwatch/internal/shared/constants"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check handles GET /.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": constants.ServiceName,
	})
}
