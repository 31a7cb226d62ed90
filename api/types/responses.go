package types

import (
	"github.com/killallgit/labeler/internal/models"
	"github.com/killallgit/labeler/internal/services/annotations"
)

// Status constants for API responses
const (
	StatusOK     = "ok"
	StatusError  = "error"
	StatusPrompt = "prompt"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`            // One of the Status constants above
	Message string `json:"message,omitempty"` // Human-readable message
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`   // Error code/type
	Details any    `json:"details,omitempty"` // Additional error details
}

// Prompt is a question or notice the client shows the user
type Prompt struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// LabelPrompt asks the client to open the label form. The client repeats the
// request with the edited label in the body.
type LabelPrompt struct {
	Initial models.Label `json:"initial"`
	IsNew   bool         `json:"is_new"`
}

// PromptResponse is returned with 409 when an operation needs an answer
// before it can complete
type PromptResponse struct {
	BaseResponse
	Prompt *Prompt      `json:"prompt,omitempty"`
	Label  *LabelPrompt `json:"label,omitempty"`
}

// SessionState is the wire form of the annotation session
type SessionState struct {
	VideoPath     string               `json:"video_path"`
	VideoHash     int32                `json:"video_hash"`
	PositionMs    int64                `json:"position_ms"`
	DurationMs    int64                `json:"duration_ms"`
	Annotations   []*models.Annotation `json:"annotations"`
	Current       *models.Annotation   `json:"current,omitempty"`
	LastUsedLabel models.Label         `json:"last_used_label"`
	Colors        map[string]string    `json:"colors"`
}

// NewSessionState converts a session snapshot for the wire. Colors maps each
// posture on the timeline to its display color.
func NewSessionState(s annotations.SessionState, colors map[string]string, positionMs, durationMs int64) SessionState {
	items := s.Annotations
	if items == nil {
		items = []*models.Annotation{}
	}
	return SessionState{
		VideoPath:     s.VideoPath,
		VideoHash:     s.VideoHash,
		PositionMs:    positionMs,
		DurationMs:    durationMs,
		Annotations:   items,
		Current:       s.Current,
		LastUsedLabel: s.LastUsedLabel,
		Colors:        colors,
	}
}

// SessionResponse is returned by every successful session operation
type SessionResponse struct {
	BaseResponse
	Session  SessionState `json:"session"`
	Warnings []Prompt     `json:"warnings,omitempty"`
	SeekMs   *int64       `json:"seek_ms,omitempty"` // where the client player should move
	Changed  bool         `json:"changed"`           // the timeline needs a redraw
}

// OpenResponse is returned when a video is opened
type OpenResponse struct {
	SessionResponse
	Restored bool `json:"restored"`
}

// NavigateResponse reports the outcome of a boundary navigation
type NavigateResponse struct {
	BaseResponse
	Position float64 `json:"position"`
	Moved    bool    `json:"moved"`
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	BaseResponse
	Timestamp string         `json:"timestamp"`
	Services  map[string]any `json:"services,omitempty"`
}
