package autosave

import "errors"

var (
	// ErrEmptyVideoPath is returned when a snapshot is requested for no video
	ErrEmptyVideoPath = errors.New("video path is empty")

	// ErrLoadFailed wraps every failure of a strict annotations file load
	ErrLoadFailed = errors.New("failed to load annotations")
)
