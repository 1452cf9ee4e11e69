package timing

import "errors"

var (
	// ErrConflictingBounds indicates a timing declared both an end and a duration
	ErrConflictingBounds = errors.New("timing declares both end and duration")

	// ErrEmptyInterval indicates a timing whose end is not after its start
	ErrEmptyInterval = errors.New("timing end must be after start")
)

// IsConflictingBounds checks if the error is a conflicting bounds error
func IsConflictingBounds(err error) bool {
	return errors.Is(err, ErrConflictingBounds)
}

// IsEmptyInterval checks if the error is an empty interval error
func IsEmptyInterval(err error) bool {
	return errors.Is(err, ErrEmptyInterval)
}
