package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hekevintran/kinetophone/internal/engine"
)

// HealthResponse represents the response from the health check endpoint
type HealthResponse struct {
	Status  string                 `json:"status"`
	Time    string                 `json:"time"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthHandler handles health check requests
type HealthHandler struct {
	engine *engine.Engine
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(eng *engine.Engine) *HealthHandler {
	return &HealthHandler{engine: eng}
}

// Check handles the health check endpoint
func (h *HealthHandler) Check(c *gin.Context) {
	response := HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
		Details: map[string]interface{}{
			"channels":       len(h.engine.Channels()),
			"playing":        h.engine.Playing(),
			"total_duration": h.engine.TotalDuration(),
		},
	}

	c.JSON(http.StatusOK, response)
}

// SetupHealthRoutes registers health check routes
func SetupHealthRoutes(apiGroup *gin.RouterGroup, eng *engine.Engine) {
	handler := NewHealthHandler(eng)
	apiGroup.GET("/health", handler.Check)
}
