package channel

import "errors"

// Custom channel store errors
var (
	// ErrDuplicateChannel indicates a channel with the same name already exists
	ErrDuplicateChannel = errors.New("channel already exists")

	// ErrUnknownChannel indicates the referenced channel does not exist
	ErrUnknownChannel = errors.New("channel not found")

	// ErrEmptyName indicates a channel was declared without a name
	ErrEmptyName = errors.New("channel name is required")
)

// IsDuplicateChannel checks if the error is a duplicate channel error
func IsDuplicateChannel(err error) bool {
	return errors.Is(err, ErrDuplicateChannel)
}

// IsUnknownChannel checks if the error is an unknown channel error
func IsUnknownChannel(err error) bool {
	return errors.Is(err, ErrUnknownChannel)
}

// IsEmptyName checks if the error is an empty channel name error
func IsEmptyName(err error) bool {
	return errors.Is(err, ErrEmptyName)
}
