package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hekevintran/kinetophone/internal/engine"
	"github.com/hekevintran/kinetophone/internal/events"
	"github.com/hekevintran/kinetophone/internal/logger"
)

const eventBufferSize = 256

// streamedEvents are the engine events forwarded to stream subscribers
var streamedEvents = []string{
	events.Play,
	events.Pause,
	events.TimeUpdate,
	events.Seeking,
	events.Seek,
	events.Enter,
	events.Exit,
	events.End,
}

// EventHandler streams engine events as server-sent events
type EventHandler struct {
	engine *engine.Engine
}

// NewEventHandler creates a new event stream handler
func NewEventHandler(eng *engine.Engine) *EventHandler {
	return &EventHandler{engine: eng}
}

// Stream handles GET /api/events. The first message is a "ready" event
// carrying the playback state; engine events follow until the client goes
// away. Events are dropped for a client that falls too far behind.
func (h *EventHandler) Stream(c *gin.Context) {
	ch := make(chan events.Event, eventBufferSize)
	forward := forwarder(ch, c.ClientIP())

	ids := make(map[string]events.ListenerID, len(streamedEvents))
	for _, name := range streamedEvents {
		ids[name] = h.engine.On(name, forward)
	}
	defer func() {
		for name, id := range ids {
			h.engine.Off(name, id)
		}
	}()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	c.SSEvent("ready", PlaybackResponse{
		Playing:       h.engine.Playing(),
		CurrentTime:   h.engine.CurrentTime(),
		TotalDuration: h.engine.TotalDuration(),
		Rate:          h.engine.PlaybackRate(),
	})
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev := <-ch:
			c.SSEvent(ev.Name, ev)
			return true
		}
	})
}

// forwarder returns a listener that queues events on ch without blocking.
// It may still run after the handler returns, so it must not hold the
// request context.
func forwarder(ch chan<- events.Event, clientIP string) events.Handler {
	return func(ev events.Event) {
		select {
		case ch <- ev:
		default:
			logger.Log.Warn().
				Str("event", ev.Name).
				Str("client_ip", clientIP).
				Msg("Event stream subscriber too slow, dropping event")
		}
	}
}

// SetupEventRoutes registers the event stream route
func SetupEventRoutes(apiGroup *gin.RouterGroup, eng *engine.Engine) {
	handler := NewEventHandler(eng)
	apiGroup.GET("/events", handler.Stream)
}
