package engine

import (
	"fmt"

	"github.com/hekevintran/kinetophone/internal/events"
	"github.com/hekevintran/kinetophone/internal/logger"
)

// Play starts playback. Playing from the end of the timeline rewinds to the
// start first. Calling Play while playing does nothing.
func (e *Engine) Play() {
	e.mu.Lock()
	e.playLocked()
	e.mu.Unlock()

	e.flush()
}

func (e *Engine) playLocked() {
	if e.playing {
		return
	}

	if e.clock.CurrentTime() >= e.totalDuration {
		e.clock.Set(0)
		e.unresolveLocked(0)
		e.clearAllLocked()
	}

	e.playing = true
	e.emit(events.Event{Name: events.Play})
	e.clock.Start()

	logger.Log.Debug().
		Int64("current_time", e.clock.CurrentTime()).
		Msg("Playback started")

	if e.tickImmediately {
		e.tickLocked(e.clock.CurrentTime())
	}
}

// Pause stops playback. Calling Pause while paused does nothing.
func (e *Engine) Pause() {
	e.mu.Lock()
	e.pauseLocked()
	e.mu.Unlock()

	e.flush()
}

func (e *Engine) pauseLocked() {
	if !e.playing {
		return
	}

	e.playing = false
	e.emit(events.Event{Name: events.Pause})
	e.clock.Pause()

	logger.Log.Debug().
		Int64("current_time", e.clock.CurrentTime()).
		Msg("Playback paused")
}

// Playing reports whether playback is running
func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// CurrentTime returns the clock's position in milliseconds
func (e *Engine) CurrentTime() int64 {
	return e.clock.CurrentTime()
}

// Seek moves playback to time, clamped into [0, TotalDuration], and resolves
// every channel at that point. It returns the clamped time. Regular ticks
// resume from the new position.
func (e *Engine) Seek(time int64) int64 {
	e.mu.Lock()
	time = e.seekLocked(time)
	e.mu.Unlock()

	e.flush()
	return time
}

func (e *Engine) seekLocked(time int64) int64 {
	if time < 0 {
		time = 0
	}
	if time > e.totalDuration {
		time = e.totalDuration
	}

	e.lastResolved = time
	e.resolved = true

	e.emit(events.Event{Name: events.Seeking, Time: time})
	e.clock.Set(time)
	e.emit(events.Event{Name: events.TimeUpdate, Time: time})
	e.resolveAllLocked(time, time)
	e.emit(events.Event{Name: events.Seek, Time: time})

	logger.Log.Debug().
		Int64("time", time).
		Msg("Seeked")
	return time
}

// PlaybackRate returns the clock's rate multiplier
func (e *Engine) PlaybackRate() float64 {
	return e.clock.Rate()
}

// SetPlaybackRate changes the clock's rate multiplier. No resolution happens
// until the next tick.
func (e *Engine) SetPlaybackRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("failed to set playback rate to %v: %w", rate, ErrInvalidRate)
	}

	e.clock.SetRate(rate)

	logger.Log.Debug().
		Float64("rate", rate).
		Msg("Playback rate changed")
	return nil
}
