package clock

import "sync"

// Manual is a deterministic clock that only advances when told to. It is used
// by tests and for offline rendering, where wall time must not matter.
//
// Callbacks run synchronously on the goroutine calling Advance or Tick and may
// call back into the clock.
type Manual struct {
	mu        sync.Mutex
	elapsed   int64
	rate      float64
	running   bool
	callbacks []Callback
}

// NewManual creates a paused manual clock at zero with rate 1
func NewManual() *Manual {
	return &Manual{rate: 1}
}

// Register adds a callback invoked on every advance
func (m *Manual) Register(fn Callback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// Start marks the clock running
func (m *Manual) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = true
}

// Pause marks the clock paused
func (m *Manual) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
}

// Running reports whether the clock is started
func (m *Manual) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Set repositions the clock
func (m *Manual) Set(elapsed int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elapsed = elapsed
}

// Rate returns the playback rate
func (m *Manual) Rate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rate
}

// SetRate changes the playback rate applied by Advance
func (m *Manual) SetRate(rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rate = rate
}

// CurrentTime returns the elapsed virtual time
func (m *Manual) CurrentTime() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed
}

// Advance moves the clock forward by wall milliseconds scaled by the rate and
// notifies callbacks. It does nothing while paused. It reports whether the
// callbacks ran.
func (m *Manual) Advance(wall int64) bool {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return false
	}
	m.elapsed += int64(float64(wall) * m.rate)
	elapsed := m.elapsed
	callbacks := append([]Callback(nil), m.callbacks...)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(elapsed)
	}
	return true
}

// Tick jumps straight to elapsed and notifies callbacks, bypassing the rate.
// It does nothing while paused. It reports whether the callbacks ran.
func (m *Manual) Tick(elapsed int64) bool {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return false
	}
	m.elapsed = elapsed
	callbacks := append([]Callback(nil), m.callbacks...)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(elapsed)
	}
	return true
}
