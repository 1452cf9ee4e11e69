package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hekevintran/kinetophone/internal/channel"
	"github.com/hekevintran/kinetophone/internal/engine"
	"github.com/hekevintran/kinetophone/internal/logger"
	"github.com/hekevintran/kinetophone/internal/timing"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// respondError maps engine errors onto status codes and error codes
func respondError(c *gin.Context, err error) {
	switch {
	case channel.IsUnknownChannel(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: err.Error()})
	case channel.IsDuplicateChannel(err):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "duplicate_name", Message: err.Error()})
	case channel.IsEmptyName(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_name", Message: err.Error()})
	case timing.IsConflictingBounds(err), timing.IsEmptyInterval(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_timing", Message: err.Error()})
	case engine.IsInvalidRate(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_rate", Message: err.Error()})
	case engine.IsInvalidDuration(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_duration", Message: err.Error()})
	default:
		logger.Log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Msg("Unexpected engine error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "Request failed"})
	}
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid_request",
		Message: "Invalid request: " + err.Error(),
	})
}
