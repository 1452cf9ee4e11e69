package channel

import (
	"github.com/google/uuid"
	"github.com/hekevintran/kinetophone/internal/models"
	"github.com/hekevintran/kinetophone/internal/timing"
)

// Kind is the direction of an active-set transition
type Kind int

const (
	// Enter marks a timing joining the active set
	Enter Kind = iota
	// Exit marks a timing leaving the active set
	Exit
)

// String returns the event name for the transition kind
func (k Kind) String() string {
	if k == Exit {
		return "exit"
	}
	return "enter"
}

// Transition is one enter or exit produced by a resolution
type Transition struct {
	Kind    Kind
	Channel string
	Timing  *timing.Timing
}

// Cue returns the public projection of the transitioning timing
func (tr Transition) Cue() models.Cue {
	return tr.Timing.Cue(tr.Channel)
}

// Resolve brings the active set in line with currentTime and returns the
// transitions that did so. lastTime == currentTime resolves a single point;
// otherwise the closed window [lastTime, currentTime] is scanned so that a
// timing starting exactly at lastTime is not skipped.
//
// Exits of previously active timings come first. Candidates follow in start
// order: a timing still running at currentTime enters, and a timing that both
// began and finished inside the window enters and exits immediately without
// joining the active set.
func (c *Channel) Resolve(lastTime, currentTime int64) []Transition {
	point := lastTime == currentTime

	var candidates []*timing.Timing
	if point {
		candidates = c.index.QueryPoint(currentTime)
	} else {
		candidates = c.index.QueryRange(lastTime, currentTime)
	}

	var out []Transition

	// Indices are collected first and removed high to low after the scan
	var stale []int
	exited := make(map[uuid.UUID]struct{})
	for i, t := range c.active {
		if !t.ActiveAt(currentTime) {
			stale = append(stale, i)
			exited[t.ID] = struct{}{}
			out = append(out, Transition{Kind: Exit, Channel: c.name, Timing: t})
		}
	}
	for j := len(stale) - 1; j >= 0; j-- {
		i := stale[j]
		c.active = append(c.active[:i], c.active[i+1:]...)
	}

	for _, t := range candidates {
		if _, ok := exited[t.ID]; ok || c.isActive(t) {
			continue
		}

		switch {
		case t.ActiveAt(currentTime):
			c.active = append(c.active, t)
			out = append(out, Transition{Kind: Enter, Channel: c.name, Timing: t})
		case !point && lastTime <= t.Start && t.End <= currentTime:
			out = append(out,
				Transition{Kind: Enter, Channel: c.name, Timing: t},
				Transition{Kind: Exit, Channel: c.name, Timing: t},
			)
		}
	}

	return out
}

// Clear empties the active set, returning an exit for every timing it held
func (c *Channel) Clear() []Transition {
	out := make([]Transition, 0, len(c.active))
	for _, t := range c.active {
		out = append(out, Transition{Kind: Exit, Channel: c.name, Timing: t})
	}
	c.active = nil
	return out
}

// At returns the timings whose [start, end) contains time, without touching
// the active set
func (c *Channel) At(time int64) []*timing.Timing {
	var out []*timing.Timing
	for _, t := range c.index.QueryPoint(time) {
		if t.ActiveAt(time) {
			out = append(out, t)
		}
	}
	return out
}

// Between returns the timings overlapping [start, end]. The upper bound is
// exclusive for timings: one ending exactly at end is left out.
func (c *Channel) Between(start, end int64) []*timing.Timing {
	var out []*timing.Timing
	for _, t := range c.index.QueryRange(start, end) {
		if t.End != end {
			out = append(out, t)
		}
	}
	return out
}

func (c *Channel) isActive(t *timing.Timing) bool {
	for _, a := range c.active {
		if a.ID == t.ID {
			return true
		}
	}
	return false
}
