package videos

import "errors"

var (
	// ErrVideoNotFound is returned when a path is not in the registry
	ErrVideoNotFound = errors.New("video not found")

	// ErrInvalidPath is returned when an empty path is given
	ErrInvalidPath = errors.New("invalid video path")
)
