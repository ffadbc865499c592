package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"profile-api.backend/internal/interfaces/http/response"
)

// HealthHandler answers liveness probes. It touches no storage.
type HealthHandler struct {
	environment string
	version     string
	startedAt   time.Time
	now         func() time.Time
}

func NewHealthHandler(environment, version string) *HealthHandler {
	return &HealthHandler{
		environment: environment,
		version:     version,
		startedAt:   time.Now(),
		now:         time.Now,
	}
}

// Health reports process uptime in seconds
// GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	now := h.now()
	response.Success(c, http.StatusOK, gin.H{
		"status":      "ok",
		"uptime":      now.Sub(h.startedAt).Seconds(),
		"environment": h.environment,
		"version":     h.version,
		"timestamp":   now.UTC().Format(time.RFC3339),
	})
}
