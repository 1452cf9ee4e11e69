package engine

import (
	"github.com/hekevintran/kinetophone/internal/events"
	"github.com/hekevintran/kinetophone/internal/logger"
)

// onTick is the clock callback. A value ahead of the clock was read before a
// backward seek repositioned it and is dropped.
func (e *Engine) onTick(elapsed int64) {
	e.mu.Lock()
	if e.playing && elapsed <= e.clock.CurrentTime() {
		e.tickLocked(elapsed)
	}
	e.mu.Unlock()

	e.flush()
}

// tickLocked coalesces clock callbacks into resolution windows. The first
// observation resolves a single point; later ones resolve the whole span since
// the last resolved time once at least tickResolution has elapsed, so no
// timing is skipped by batching. Crossing the total duration flushes whatever
// window is still pending, up to the total duration, then rolls the timeline
// back to the start.
func (e *Engine) tickLocked(elapsed int64) {
	ending := elapsed > e.totalDuration

	switch {
	case !e.resolved && ending:
		e.advanceLocked(elapsed, min(e.resumeFrom, e.totalDuration))
	case !e.resolved:
		e.emit(events.Event{Name: events.TimeUpdate, Time: elapsed})
		e.resolveAllLocked(elapsed, elapsed)
		e.lastResolved = elapsed
		e.resolved = true
	case elapsed-e.lastResolved >= e.tickResolution,
		ending && e.lastResolved < e.totalDuration:
		e.advanceLocked(elapsed, e.lastResolved+1)
	}

	if ending {
		e.rolloverLocked(elapsed)
	}
}

// advanceLocked announces elapsed and resolves [from, elapsed], never past the
// total duration
func (e *Engine) advanceLocked(elapsed, from int64) {
	to := min(elapsed, e.totalDuration)
	e.emit(events.Event{Name: events.TimeUpdate, Time: elapsed})
	e.resolveAllLocked(min(from, to), to)
	e.lastResolved = elapsed
	e.resolved = true
}

// unresolveLocked makes the next tick resolve from scratch. from is where
// playback resumes, used when that tick already crosses the end.
func (e *Engine) unresolveLocked(from int64) {
	e.resolved = false
	e.resumeFrom = from
}

// resolveAllLocked resolves every channel over [from, to] in channel order
func (e *Engine) resolveAllLocked(from, to int64) {
	for _, ch := range e.store.Channels() {
		e.emitTransitions(ch.Resolve(from, to))
	}
}

// clearAllLocked empties every active set, emitting an exit for each timing
func (e *Engine) clearAllLocked() {
	for _, ch := range e.store.Channels() {
		e.emitTransitions(ch.Clear())
	}
}

// rolloverLocked pauses, rewinds to zero, exits every active timing and
// announces the end of the timeline
func (e *Engine) rolloverLocked(elapsed int64) {
	logger.Log.Debug().
		Int64("elapsed", elapsed).
		Int64("total_duration", e.totalDuration).
		Msg("Timeline end reached, rewinding")

	e.pauseLocked()
	e.clock.Set(0)
	e.unresolveLocked(0)
	e.clearAllLocked()
	e.emit(events.Event{Name: events.End})
}
