package clock

import (
	"sync"
	"time"
)

const (
	// DefaultFrameInterval is the callback period of a real-time clock
	DefaultFrameInterval = 16 * time.Millisecond
)

// Realtime advances with the wall clock, scaled by its rate, and invokes
// callbacks every frame interval from its own goroutine. Callbacks run without
// the clock's lock held, so they may pause or reposition the clock.
type Realtime struct {
	mu        sync.Mutex
	frame     time.Duration
	now       func() time.Time
	rate      float64
	callbacks []Callback

	// elapsed at anchor; while running, time moves from anchor at rate
	base   float64
	anchor time.Time

	running bool
	stop    chan struct{}
}

// NewRealtime creates a paused real-time clock. A non-positive frame uses
// DefaultFrameInterval.
func NewRealtime(frame time.Duration) *Realtime {
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	return &Realtime{
		frame: frame,
		now:   time.Now,
		rate:  1,
	}
}

// Register adds a callback invoked every frame while running
func (r *Realtime) Register(fn Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks = append(r.callbacks, fn)
}

// Start begins advancing. Starting a running clock does nothing.
func (r *Realtime) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return
	}
	r.running = true
	r.anchor = r.now()
	r.stop = make(chan struct{})

	go r.run(r.stop)
}

// Pause stops advancing and keeps the current time. It does not wait for an
// in-flight callback to return.
func (r *Realtime) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	r.base = r.elapsedLocked()
	r.running = false
	close(r.stop)
	r.stop = nil
}

// Set repositions the clock
func (r *Realtime) Set(elapsed int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base = float64(elapsed)
	r.anchor = r.now()
}

// Rate returns the playback rate
func (r *Realtime) Rate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rate
}

// SetRate changes the playback rate from now on
func (r *Realtime) SetRate(rate float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base = r.elapsedLocked()
	r.anchor = r.now()
	r.rate = rate
}

// CurrentTime returns the elapsed virtual time in milliseconds
func (r *Realtime) CurrentTime() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(r.elapsedLocked())
}

// Running reports whether the clock is advancing
func (r *Realtime) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *Realtime) elapsedLocked() float64 {
	if !r.running {
		return r.base
	}
	wall := r.now().Sub(r.anchor)
	return r.base + float64(wall.Milliseconds())*r.rate
}

func (r *Realtime) run(stop chan struct{}) {
	ticker := time.NewTicker(r.frame)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.fire(stop)
		}
	}
}

// fire reports the current time to callbacks unless this run was stopped
func (r *Realtime) fire(stop chan struct{}) {
	r.mu.Lock()
	if r.stop != stop {
		r.mu.Unlock()
		return
	}
	elapsed := int64(r.elapsedLocked())
	callbacks := append([]Callback(nil), r.callbacks...)
	r.mu.Unlock()

	for _, fn := range callbacks {
		fn(elapsed)
	}
}
