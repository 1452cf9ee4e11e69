package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hekevintran/kinetophone/internal/engine"
	"github.com/hekevintran/kinetophone/internal/logger"
)

// PlaybackResponse represents the playback state
type PlaybackResponse struct {
	Playing       bool    `json:"playing"`
	CurrentTime   int64   `json:"current_time"`
	TotalDuration int64   `json:"total_duration"`
	Rate          float64 `json:"rate"`
}

// SeekRequest represents a request to move the playhead
type SeekRequest struct {
	Time *int64 `json:"time" binding:"required"`
}

// RateRequest represents a request to change the playback rate
type RateRequest struct {
	Rate float64 `json:"rate" binding:"required"`
}

// DurationRequest represents a request to change the timeline length
type DurationRequest struct {
	Duration int64 `json:"duration" binding:"required"`
}

// PlaybackHandler handles playback control requests
type PlaybackHandler struct {
	engine *engine.Engine
}

// NewPlaybackHandler creates a new playback handler instance
func NewPlaybackHandler(eng *engine.Engine) *PlaybackHandler {
	return &PlaybackHandler{engine: eng}
}

func (h *PlaybackHandler) state() PlaybackResponse {
	return PlaybackResponse{
		Playing:       h.engine.Playing(),
		CurrentTime:   h.engine.CurrentTime(),
		TotalDuration: h.engine.TotalDuration(),
		Rate:          h.engine.PlaybackRate(),
	}
}

// GetState handles GET /api/playback
func (h *PlaybackHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.state())
}

// Play handles POST /api/playback/play
func (h *PlaybackHandler) Play(c *gin.Context) {
	h.engine.Play()
	c.JSON(http.StatusOK, h.state())
}

// Pause handles POST /api/playback/pause
func (h *PlaybackHandler) Pause(c *gin.Context) {
	h.engine.Pause()
	c.JSON(http.StatusOK, h.state())
}

// Seek handles POST /api/playback/seek
func (h *PlaybackHandler) Seek(c *gin.Context) {
	var req SeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	clamped := h.engine.Seek(*req.Time)

	logger.Log.Debug().
		Int64("requested", *req.Time).
		Int64("time", clamped).
		Msg("Seek via API")

	c.JSON(http.StatusOK, h.state())
}

// SetRate handles PUT /api/playback/rate
func (h *PlaybackHandler) SetRate(c *gin.Context) {
	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if err := h.engine.SetPlaybackRate(req.Rate); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.state())
}

// SetDuration handles PUT /api/playback/duration
func (h *PlaybackHandler) SetDuration(c *gin.Context) {
	var req DurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if err := h.engine.SetTotalDuration(req.Duration); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.state())
}

// SetupPlaybackRoutes registers playback control routes
func SetupPlaybackRoutes(apiGroup *gin.RouterGroup, eng *engine.Engine) {
	handler := NewPlaybackHandler(eng)

	apiGroup.GET("/playback", handler.GetState)
	apiGroup.POST("/playback/play", handler.Play)
	apiGroup.POST("/playback/pause", handler.Pause)
	apiGroup.POST("/playback/seek", handler.Seek)
	apiGroup.PUT("/playback/rate", handler.SetRate)
	apiGroup.PUT("/playback/duration", handler.SetDuration)
}
