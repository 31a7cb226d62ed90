package annotations

import (
	"github.com/killallgit/labeler/internal/models"
)

// Player is the playback collaborator. The engine reads the position but
// never owns it.
type Player interface {
	// PositionMs returns the current playback position in milliseconds
	PositionMs() int64

	// DurationMs returns the media duration in milliseconds, 0 when unknown
	DurationMs() int64

	// Seek asks the player to move to the given position
	Seek(ms int64)
}

// UI is the interactive collaborator that renders the timeline and asks the
// user questions. All calls are synchronous.
type UI interface {
	// Confirm asks a yes/no question and reports whether the answer was yes
	Confirm(title, message string) bool

	// Warn shows a blocking message
	Warn(title, message string)

	// PromptLabelEdit opens the label form pre-populated with initial.
	// It returns false when the user cancels.
	PromptLabelEdit(initial models.Label, isNew bool) (*models.Label, bool)

	// NotifyTimelineChanged requests a timeline redraw
	NotifyTimelineChanged()
}

// ChangeEvent describes the session state right after a successful mutation.
// Annotations is a deep copy taken under the session lock.
type ChangeEvent struct {
	Op          string
	VideoPath   string
	VideoHash   int32
	Annotations []*models.Annotation
}

// MutationHook runs after every successful mutating operation, outside the
// session lock
type MutationHook func(ev ChangeEvent)
