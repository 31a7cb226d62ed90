package annotations

import (
	"errors"
	"fmt"
)

// Validation errors. Operations returning one of these leave the session unchanged.
var (
	ErrOverlap         = errors.New("annotations overlap")
	ErrInvalidEndTime  = errors.New("end time must be after start time")
	ErrNotAdjacent     = errors.New("annotations are not adjacent")
	ErrSplitTooSmall   = errors.New("split segment too small")
	ErrSplitOutOfRange = errors.New("split point outside annotation")
	ErrNoAnnotation    = errors.New("no annotation at current position")
	ErrNoPrevious      = errors.New("no previous annotation")
	ErrNoNext          = errors.New("no next annotation")
	ErrNothingToEdit   = errors.New("nothing to edit")
)

var (
	// ErrDeclined is returned when the user answers no to a confirmation prompt
	ErrDeclined = errors.New("operation declined")

	// ErrIntegrity is returned when the store is found in a state its
	// invariants rule out, e.g. removing an ID that is not present
	ErrIntegrity = errors.New("annotation store integrity error")
)

// UserError is a failure that is shown to the user with a title and message
type UserError struct {
	Title   string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func userError(err error, title, format string, args ...any) *UserError {
	return &UserError{
		Title:   title,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
