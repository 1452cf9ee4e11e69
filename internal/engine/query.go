package engine

import (
	"github.com/hekevintran/kinetophone/internal/models"
	"github.com/hekevintran/kinetophone/internal/timing"
)

// TimingsAt returns the cues active at time on the named channels, or on
// every channel when none are named. It never changes playback state.
func (e *Engine) TimingsAt(time int64, channels ...string) ([]models.Cue, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	chs, err := e.store.Select(channels...)
	if err != nil {
		return nil, err
	}

	out := make([]models.Cue, 0)
	for _, ch := range chs {
		out = appendCues(out, ch.Name(), ch.At(time))
	}
	return out, nil
}

// TimingsBetween returns the cues overlapping [start, end] on the named
// channels, or on every channel when none are named. A timing ending exactly
// at end is excluded. It never changes playback state.
func (e *Engine) TimingsBetween(start, end int64, channels ...string) ([]models.Cue, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	chs, err := e.store.Select(channels...)
	if err != nil {
		return nil, err
	}

	out := make([]models.Cue, 0)
	for _, ch := range chs {
		out = appendCues(out, ch.Name(), ch.Between(start, end))
	}
	return out, nil
}

func appendCues(out []models.Cue, name string, ts []*timing.Timing) []models.Cue {
	for _, t := range ts {
		out = append(out, t.Cue(name))
	}
	return out
}
