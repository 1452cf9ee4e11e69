// Package timing turns timing declarations into the canonical half-open
// intervals the engine resolves against.
package timing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hekevintran/kinetophone/internal/models"
)

// pointWidth is the width given to a timing that declares neither end nor duration
const pointWidth int64 = 1

// Timing is a normalized timing covering [Start, End). It is immutable once built.
type Timing struct {
	// ID identifies the timing for active-set membership
	ID    uuid.UUID
	Start int64
	End   int64
	Data  any

	decl models.Timing
}

// Normalize validates a declaration and produces its canonical interval
func Normalize(decl models.Timing) (*Timing, error) {
	if decl.End != nil && decl.Duration != nil {
		return nil, fmt.Errorf("timing at %d: %w", decl.Start, ErrConflictingBounds)
	}

	end := decl.Start + pointWidth
	switch {
	case decl.Duration != nil:
		end = decl.Start + *decl.Duration
	case decl.End != nil:
		end = *decl.End
	}

	if end <= decl.Start {
		return nil, fmt.Errorf("timing at %d ending at %d: %w", decl.Start, end, ErrEmptyInterval)
	}

	return &Timing{
		ID:    uuid.New(),
		Start: decl.Start,
		End:   end,
		Data:  decl.Data,
		decl:  copyDecl(decl),
	}, nil
}

// Declaration returns the declaration the timing was normalized from
func (t *Timing) Declaration() models.Timing {
	return copyDecl(t.decl)
}

// ActiveAt reports whether time falls inside [Start, End)
func (t *Timing) ActiveAt(time int64) bool {
	return t.Start <= time && time < t.End
}

// Cue projects the timing for delivery to listeners on the named channel.
// Only the bounds present in the original declaration are included.
func (t *Timing) Cue(channel string) models.Cue {
	cue := models.Cue{
		Name:  channel,
		Start: t.Start,
		Data:  t.decl.Data,
	}
	if t.decl.End != nil {
		cue.End = models.Int64(*t.decl.End)
	}
	if t.decl.Duration != nil {
		cue.Duration = models.Int64(*t.decl.Duration)
	}
	return cue
}

// copyDecl detaches the bound pointers so later caller mutation cannot leak in
func copyDecl(decl models.Timing) models.Timing {
	out := models.Timing{Start: decl.Start, Data: decl.Data}
	if decl.End != nil {
		out.End = models.Int64(*decl.End)
	}
	if decl.Duration != nil {
		out.Duration = models.Int64(*decl.Duration)
	}
	return out
}
