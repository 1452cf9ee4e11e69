// Package clock provides the playback clocks that drive the engine. A clock
// advances a virtual elapsed time, optionally scaled by a playback rate, and
// reports it to registered callbacks while running.
package clock

// Callback receives the clock's elapsed virtual time in milliseconds
type Callback func(elapsed int64)

// Clock is the timer contract the engine consumes. Callbacks are invoked with
// non-decreasing elapsed time while the clock runs and never while paused.
type Clock interface {
	// Register adds a callback invoked on every advance
	Register(fn Callback)
	// Start resumes advancing from the current time
	Start()
	// Pause stops advancing; the current time is kept
	Pause()
	// Set repositions the clock without invoking callbacks
	Set(elapsed int64)
	// Rate returns the playback rate multiplier
	Rate() float64
	// SetRate changes the playback rate multiplier
	SetRate(rate float64)
	// CurrentTime returns the elapsed virtual time
	CurrentTime() int64
}
