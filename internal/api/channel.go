package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hekevintran/kinetophone/internal/engine"
	"github.com/hekevintran/kinetophone/internal/logger"
	"github.com/hekevintran/kinetophone/internal/models"
)

// ChannelListResponse represents a list of channels
type ChannelListResponse struct {
	Channels []engine.ChannelInfo `json:"channels"`
}

// CreateChannelRequest represents a request to declare a new channel
type CreateChannelRequest struct {
	Name    string          `json:"name" binding:"required"`
	Timings []models.Timing `json:"timings"`
}

// TimingRequest represents a request to add one timing to a channel
type TimingRequest struct {
	Start    *int64 `json:"start" binding:"required"`
	End      *int64 `json:"end,omitempty"`
	Duration *int64 `json:"duration,omitempty"`
	Data     any    `json:"data,omitempty"`
}

// ChannelHandler handles channel-related API requests
type ChannelHandler struct {
	engine *engine.Engine
}

// NewChannelHandler creates a new channel handler instance
func NewChannelHandler(eng *engine.Engine) *ChannelHandler {
	return &ChannelHandler{engine: eng}
}

// ListChannels handles GET /api/channels
func (h *ChannelHandler) ListChannels(c *gin.Context) {
	c.JSON(http.StatusOK, ChannelListResponse{
		Channels: h.engine.Channels(),
	})
}

// CreateChannel handles POST /api/channels
func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	var req CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if err := h.engine.AddChannel(models.Channel{Name: req.Name, Timings: req.Timings}); err != nil {
		respondError(c, err)
		return
	}

	logger.Log.Info().
		Str("channel", req.Name).
		Int("timings", len(req.Timings)).
		Msg("Channel created via API")

	c.JSON(http.StatusCreated, gin.H{"name": req.Name, "timings": len(req.Timings)})
}

// AddTiming handles POST /api/channels/:name/timings
func (h *ChannelHandler) AddTiming(c *gin.Context) {
	name := c.Param("name")

	var req TimingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	decl := models.Timing{
		Start:    *req.Start,
		End:      req.End,
		Duration: req.Duration,
		Data:     req.Data,
	}
	if err := h.engine.AddTiming(name, decl); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.Cue{
		Name:     name,
		Start:    decl.Start,
		End:      decl.End,
		Duration: decl.Duration,
		Data:     decl.Data,
	})
}

// SetupChannelRoutes registers all channel-related routes
func SetupChannelRoutes(apiGroup *gin.RouterGroup, eng *engine.Engine) {
	handler := NewChannelHandler(eng)

	apiGroup.GET("/channels", handler.ListChannels)
	apiGroup.POST("/channels", handler.CreateChannel)
	apiGroup.POST("/channels/:name/timings", handler.AddTiming)
}
