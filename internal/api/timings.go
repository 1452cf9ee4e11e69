package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hekevintran/kinetophone/internal/engine"
	"github.com/hekevintran/kinetophone/internal/models"
)

// TimingListResponse represents the cues matched by a query
type TimingListResponse struct {
	Timings []models.Cue `json:"timings"`
}

// TimingHandler answers point and range queries
type TimingHandler struct {
	engine *engine.Engine
}

// NewTimingHandler creates a new timing query handler
func NewTimingHandler(eng *engine.Engine) *TimingHandler {
	return &TimingHandler{engine: eng}
}

// Query handles GET /api/timings?at=T or GET /api/timings?from=A&to=B, with
// optional repeated channel parameters
func (h *TimingHandler) Query(c *gin.Context) {
	channels := c.QueryArray("channel")

	var (
		cues []models.Cue
		err  error
	)

	if at, ok := c.GetQuery("at"); ok {
		t, perr := strconv.ParseInt(at, 10, 64)
		if perr != nil {
			invalidRequest(c, errors.New("at must be an integer"))
			return
		}
		cues, err = h.engine.TimingsAt(t, channels...)
	} else {
		from, fok := c.GetQuery("from")
		to, tok := c.GetQuery("to")
		if !fok || !tok {
			invalidRequest(c, errors.New("either at or both from and to are required"))
			return
		}
		start, perr := strconv.ParseInt(from, 10, 64)
		if perr != nil {
			invalidRequest(c, errors.New("from must be an integer"))
			return
		}
		end, perr := strconv.ParseInt(to, 10, 64)
		if perr != nil {
			invalidRequest(c, errors.New("to must be an integer"))
			return
		}
		cues, err = h.engine.TimingsBetween(start, end, channels...)
	}

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TimingListResponse{Timings: cues})
}

// SetupTimingRoutes registers timing query routes
func SetupTimingRoutes(apiGroup *gin.RouterGroup, eng *engine.Engine) {
	handler := NewTimingHandler(eng)
	apiGroup.GET("/timings", handler.Query)
}
