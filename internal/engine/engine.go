// Package engine drives channel resolution from a playback clock. It turns
// the clock's elapsed-time callbacks into coalesced resolution windows,
// exposes play/pause/seek/rate control, and answers point and range queries.
package engine

import (
	"fmt"
	"sync"

	"github.com/hekevintran/kinetophone/internal/channel"
	"github.com/hekevintran/kinetophone/internal/clock"
	"github.com/hekevintran/kinetophone/internal/events"
	"github.com/hekevintran/kinetophone/internal/logger"
	"github.com/hekevintran/kinetophone/internal/models"
)

const (
	// DefaultTimeUpdateResolution is the minimum clock advance, in
	// milliseconds, between two timeupdate batches
	DefaultTimeUpdateResolution int64 = 33
)

// Option configures an Engine
type Option func(*Engine)

// WithTimeUpdateResolution sets the minimum clock advance between two
// resolution batches. Values below 1 are raised to 1.
func WithTimeUpdateResolution(ms int64) Option {
	return func(e *Engine) {
		if ms < 1 {
			ms = 1
		}
		e.tickResolution = ms
	}
}

// WithTickImmediately makes Play resolve at the clock's current time right
// after starting the clock instead of waiting for its first callback
func WithTickImmediately(enabled bool) Option {
	return func(e *Engine) {
		e.tickImmediately = enabled
	}
}

// Engine resolves channel timings against a playback clock and publishes
// enter/exit transitions on its own event bus.
//
// State changes are serialised by mu. Events produced while mu is held are
// queued and delivered after it is released, in the order they were
// produced, so handlers may call back into the engine.
type Engine struct {
	mu              sync.Mutex
	clock           clock.Clock
	bus             *events.Bus
	store           *channel.Store
	totalDuration   int64
	playing         bool
	lastResolved    int64
	resolved        bool
	resumeFrom      int64
	tickResolution  int64
	tickImmediately bool

	outMu    sync.Mutex
	outbox   []events.Event
	draining bool
}

// New builds an engine over clk with the given channels. totalDuration must
// be positive. The engine registers its tick handler on clk.
func New(clk clock.Clock, totalDuration int64, channels []models.Channel, opts ...Option) (*Engine, error) {
	if totalDuration <= 0 {
		return nil, ErrMissingTotalDuration
	}

	e := &Engine{
		clock:          clk,
		bus:            events.NewBus(),
		store:          channel.NewStore(totalDuration),
		totalDuration:  totalDuration,
		tickResolution: DefaultTimeUpdateResolution,
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, decl := range channels {
		if _, err := e.store.AddChannel(decl); err != nil {
			logger.Log.Warn().
				Err(err).
				Str("channel", decl.Name).
				Msg("Engine construction failed: invalid channel")
			return nil, fmt.Errorf("failed to create engine: %w", err)
		}
	}

	clk.Register(e.onTick)

	logger.Log.Info().
		Int("channels", len(channels)).
		Int64("total_duration", totalDuration).
		Int64("tick_resolution", e.tickResolution).
		Msg("Engine created")

	return e, nil
}

// On registers handler for events named name
func (e *Engine) On(name string, handler events.Handler) events.ListenerID {
	return e.bus.On(name, handler)
}

// Once registers handler for the next event named name
func (e *Engine) Once(name string, handler events.Handler) events.ListenerID {
	return e.bus.Once(name, handler)
}

// Off removes a handler registered with On or Once
func (e *Engine) Off(name string, id events.ListenerID) bool {
	return e.bus.Off(name, id)
}

// ListenerCount returns the number of handlers registered for name
func (e *Engine) ListenerCount(name string) int {
	return e.bus.ListenerCount(name)
}

// AddChannel registers a new channel. Nothing changes if the name is taken or
// any timing is invalid.
func (e *Engine) AddChannel(decl models.Channel) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.store.AddChannel(decl); err != nil {
		logger.Log.Warn().
			Err(err).
			Str("channel", decl.Name).
			Msg("Channel add rejected")
		return err
	}

	logger.Log.Debug().
		Str("channel", decl.Name).
		Int("timings", len(decl.Timings)).
		Msg("Channel added")
	return nil
}

// AddTiming adds a timing to an existing channel. It takes effect on the next
// resolution that covers it.
func (e *Engine) AddTiming(channelName string, decl models.Timing) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.store.AddTiming(channelName, decl)
	if err != nil {
		logger.Log.Warn().
			Err(err).
			Str("channel", channelName).
			Int64("start", decl.Start).
			Msg("Timing add rejected")
		return err
	}

	logger.Log.Debug().
		Str("channel", channelName).
		Str("timing_id", t.ID.String()).
		Int64("start", t.Start).
		Int64("end", t.End).
		Msg("Timing added")
	return nil
}

// TotalDuration returns the timeline length in milliseconds
func (e *Engine) TotalDuration() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalDuration
}

// SetTotalDuration changes the timeline length and rebuilds every channel
// from its declared timings. Active sets are dropped without exit events and
// the next tick resolves from scratch.
func (e *Engine) SetTotalDuration(totalDuration int64) error {
	if totalDuration <= 0 {
		return fmt.Errorf("failed to set total duration to %d: %w", totalDuration, ErrInvalidDuration)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.totalDuration = totalDuration
	e.store.Rebuild(totalDuration)
	e.unresolveLocked(e.clock.CurrentTime())

	logger.Log.Debug().
		Int64("total_duration", totalDuration).
		Msg("Total duration changed, channels rebuilt")
	return nil
}

// ChannelInfo describes a channel and its timings
type ChannelInfo struct {
	Name    string       `json:"name"`
	Timings []models.Cue `json:"timings"`
	Active  []models.Cue `json:"active"`
}

// Channels describes every channel in the order they were added
func (e *Engine) Channels() []ChannelInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	chs := e.store.Channels()
	out := make([]ChannelInfo, 0, len(chs))
	for _, ch := range chs {
		info := ChannelInfo{
			Name:    ch.Name(),
			Timings: make([]models.Cue, 0),
			Active:  make([]models.Cue, 0),
		}
		for _, t := range ch.Timings() {
			info.Timings = append(info.Timings, t.Cue(ch.Name()))
		}
		for _, t := range ch.Active() {
			info.Active = append(info.Active, t.Cue(ch.Name()))
		}
		out = append(out, info)
	}
	return out
}

// emit queues an event for delivery once the current operation finishes
func (e *Engine) emit(event events.Event) {
	e.outMu.Lock()
	e.outbox = append(e.outbox, event)
	e.outMu.Unlock()
}

// emitTransitions queues the generic and channel-scoped events for each transition
func (e *Engine) emitTransitions(trs []channel.Transition) {
	for _, tr := range trs {
		cue := tr.Cue()
		generic, scoped := events.Enter, events.EnterOn(tr.Channel)
		if tr.Kind == channel.Exit {
			generic, scoped = events.Exit, events.ExitOn(tr.Channel)
		}
		e.emit(events.Event{Name: generic, Cue: &cue})
		scopedCue := cue
		e.emit(events.Event{Name: scoped, Cue: &scopedCue})
	}
}

// flush delivers queued events. Only one caller drains at a time; events
// queued by handlers during delivery are picked up by the same drainer.
func (e *Engine) flush() {
	e.outMu.Lock()
	if e.draining {
		e.outMu.Unlock()
		return
	}
	e.draining = true
	e.outMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			e.outMu.Lock()
			e.draining = false
			e.outMu.Unlock()
			panic(r)
		}
	}()

	for {
		batch := e.nextBatch()
		if len(batch) == 0 {
			return
		}
		for _, event := range batch {
			e.bus.Emit(event)
		}
	}
}

// nextBatch takes the queued events, releasing the drain when none are left
func (e *Engine) nextBatch() []events.Event {
	e.outMu.Lock()
	defer e.outMu.Unlock()

	batch := e.outbox
	e.outbox = nil
	if len(batch) == 0 {
		e.draining = false
	}
	return batch
}
