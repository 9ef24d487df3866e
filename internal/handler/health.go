package handler

import (
	"net/http"
	"time"

	"ai-listener/backend/internal/engine"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Generator string `json:"generator"`
}

// HealthHandler reports service health. The service is healthy even
// without a generator: the rule-based path always works.
type HealthHandler struct {
	engine *engine.Engine
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(eng *engine.Engine) *HealthHandler {
	return &HealthHandler{engine: eng}
}

// HandleHealth returns the health status of the service.
// Used for the liveness probe.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	generator := "fallback-only"
	if h.engine.HasGenerator() {
		generator = "configured"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Generator: generator,
	})
}

// HandleReadiness returns whether the service is ready to accept traffic.
// Used for the startup probe.
func (h *HealthHandler) HandleReadiness(c *gin.Context) {
	if h.engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "engine_not_initialized",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
