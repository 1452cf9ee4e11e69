package models

// Timing is a timing declaration as supplied by a caller. At most one of End
// and Duration may be set; with neither, the timing is a point event one
// millisecond wide. All times are milliseconds on the playback timeline.
type Timing struct {
	Start    int64  `json:"start" yaml:"start"`
	End      *int64 `json:"end,omitempty" yaml:"end,omitempty"`
	Duration *int64 `json:"duration,omitempty" yaml:"duration,omitempty"`
	Data     any    `json:"data,omitempty" yaml:"data,omitempty"`
}

// Channel declares a named set of timings resolved independently of other channels
type Channel struct {
	Name    string   `json:"name" yaml:"name"`
	Timings []Timing `json:"timings,omitempty" yaml:"timings,omitempty"`
}

// Cue is the public projection of a timing delivered with enter/exit events and
// returned by queries. Only the bounds the caller declared are echoed back.
type Cue struct {
	Name     string `json:"name"`
	Start    int64  `json:"start"`
	End      *int64 `json:"end,omitempty"`
	Duration *int64 `json:"duration,omitempty"`
	Data     any    `json:"data,omitempty"`
}

// Int64 returns a pointer to v, for building declarations inline
func Int64(v int64) *int64 {
	return &v
}
