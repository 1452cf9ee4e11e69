package engine

import "errors"

var (
	// ErrMissingTotalDuration is returned when an engine is built without a
	// positive total duration
	ErrMissingTotalDuration = errors.New("total duration is required")

	// ErrInvalidDuration is returned when the total duration is set to a
	// non-positive value
	ErrInvalidDuration = errors.New("total duration must be positive")

	// ErrInvalidRate is returned when the playback rate is set to a
	// non-positive value
	ErrInvalidRate = errors.New("playback rate must be positive")
)

// IsMissingTotalDuration checks if the error is a missing total duration error
func IsMissingTotalDuration(err error) bool {
	return errors.Is(err, ErrMissingTotalDuration)
}

// IsInvalidDuration checks if the error is an invalid duration error
func IsInvalidDuration(err error) bool {
	return errors.Is(err, ErrInvalidDuration)
}

// IsInvalidRate checks if the error is an invalid rate error
func IsInvalidRate(err error) bool {
	return errors.Is(err, ErrInvalidRate)
}
