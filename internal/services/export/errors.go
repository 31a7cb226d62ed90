package export

import "errors"

var (
	// ErrUnknownSink is returned for an export sink name that is not configured
	ErrUnknownSink = errors.New("unknown export sink")

	// ErrEmptyName is returned when an archive name is missing
	ErrEmptyName = errors.New("export name is empty")
)
