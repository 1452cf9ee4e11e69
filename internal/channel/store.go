// Package channel owns the per-channel timing collections and resolves which
// timings are active as the playback clock moves.
package channel

import (
	"fmt"

	"github.com/hekevintran/kinetophone/internal/models"
	"github.com/hekevintran/kinetophone/internal/rangeindex"
	"github.com/hekevintran/kinetophone/internal/timing"
)

// Channel holds the timings of one named channel. timings is the source of
// truth; index is derived from it and can be rebuilt at any time.
type Channel struct {
	name    string
	timings []*timing.Timing
	index   *rangeindex.Index[*timing.Timing]
	active  []*timing.Timing
}

// Name returns the channel's unique name
func (c *Channel) Name() string {
	return c.name
}

// Timings returns the channel's normalized timings in declaration order
func (c *Channel) Timings() []*timing.Timing {
	out := make([]*timing.Timing, len(c.timings))
	copy(out, c.timings)
	return out
}

// Active returns a snapshot of the currently active timings
func (c *Channel) Active() []*timing.Timing {
	out := make([]*timing.Timing, len(c.active))
	copy(out, c.active)
	return out
}

func (c *Channel) insert(t *timing.Timing) {
	c.timings = append(c.timings, t)
	c.index.Insert(t.Start, t.End, t)
}

// Store is the set of channels known to an engine. Channel iteration order is
// the order channels were added. Store is not safe for concurrent use.
type Store struct {
	channels     map[string]*Channel
	order        []string
	capacityHint int
}

// NewStore creates an empty store sized for a timeline of totalDuration
func NewStore(totalDuration int64) *Store {
	return &Store{
		channels:     make(map[string]*Channel),
		capacityHint: capacityHint(totalDuration),
	}
}

// capacityHint derives the index preallocation from the timeline length
func capacityHint(totalDuration int64) int {
	return int(totalDuration / 2)
}

// AddChannel normalizes every declared timing and registers the channel.
// Nothing is registered if any timing fails to normalize.
func (s *Store) AddChannel(decl models.Channel) (*Channel, error) {
	if decl.Name == "" {
		return nil, ErrEmptyName
	}
	if _, exists := s.channels[decl.Name]; exists {
		return nil, fmt.Errorf("failed to add channel %q: %w", decl.Name, ErrDuplicateChannel)
	}

	normalized := make([]*timing.Timing, 0, len(decl.Timings))
	for i, d := range decl.Timings {
		t, err := timing.Normalize(d)
		if err != nil {
			return nil, fmt.Errorf("failed to add channel %q: timing %d: %w", decl.Name, i, err)
		}
		normalized = append(normalized, t)
	}

	ch := &Channel{
		name:  decl.Name,
		index: rangeindex.New[*timing.Timing](s.capacityHint),
	}
	for _, t := range normalized {
		ch.insert(t)
	}

	s.channels[decl.Name] = ch
	s.order = append(s.order, decl.Name)
	return ch, nil
}

// AddTiming normalizes decl and adds it to an existing channel. The active set
// is untouched; the timing becomes active on a later resolution covering it.
func (s *Store) AddTiming(name string, decl models.Timing) (*timing.Timing, error) {
	ch, ok := s.channels[name]
	if !ok {
		return nil, fmt.Errorf("failed to add timing to %q: %w", name, ErrUnknownChannel)
	}

	t, err := timing.Normalize(decl)
	if err != nil {
		return nil, fmt.Errorf("failed to add timing to %q: %w", name, err)
	}

	ch.insert(t)
	return t, nil
}

// Get returns the named channel
func (s *Store) Get(name string) (*Channel, bool) {
	ch, ok := s.channels[name]
	return ch, ok
}

// Channels returns every channel in the order they were added
func (s *Store) Channels() []*Channel {
	out := make([]*Channel, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.channels[name])
	}
	return out
}

// Select returns the named channels, or every channel when names is empty
func (s *Store) Select(names ...string) ([]*Channel, error) {
	if len(names) == 0 {
		return s.Channels(), nil
	}

	out := make([]*Channel, 0, len(names))
	for _, name := range names {
		ch, ok := s.channels[name]
		if !ok {
			return nil, fmt.Errorf("channel %q: %w", name, ErrUnknownChannel)
		}
		out = append(out, ch)
	}
	return out, nil
}

// Rebuild recreates every channel's index for a new timeline length from the
// retained timings. Active sets are dropped without transitions.
func (s *Store) Rebuild(totalDuration int64) {
	s.capacityHint = capacityHint(totalDuration)
	for _, name := range s.order {
		ch := s.channels[name]
		index := rangeindex.New[*timing.Timing](s.capacityHint)
		for _, t := range ch.timings {
			index.Insert(t.Start, t.End, t)
		}
		ch.index = index
		ch.active = nil
	}
}
