package types

import (
	"encoding/json"

	"github.com/killallgit/labeler/internal/models"
)

// OperationRequest is the body shared by the session operation endpoints.
// PositionMs reports the client's playhead; Confirm answers a pending prompt.
type OperationRequest struct {
	PositionMs *int64        `json:"position_ms,omitempty" example:"12500"`
	Confirm    *bool         `json:"confirm,omitempty"`
	Label      *models.Label `json:"label,omitempty"`
}

// OpenRequest opens a video file and starts a new session on it
type OpenRequest struct {
	Path    string `json:"path" binding:"required" example:"/data/videos/P01.mp4"`
	Restore *bool  `json:"restore,omitempty"` // answer to the autosave recovery prompt
}

// PositionRequest reports the playback state of the client player
type PositionRequest struct {
	PositionMs int64  `json:"position_ms" example:"12500"`
	DurationMs *int64 `json:"duration_ms,omitempty"`
}

// LoadRequest replaces the session annotations with a labels document, read
// either from a server-side path or from the inline document
type LoadRequest struct {
	Path     string          `json:"path,omitempty"`
	Document json.RawMessage `json:"document,omitempty"`
	Confirm  *bool           `json:"confirm,omitempty"`
}

// ExportRequest names the archive written to the configured export sink
type ExportRequest struct {
	Name string `json:"name,omitempty" example:"P01_labels.zip"`
}

// LabelRequest carries a label to check against the category catalog
type LabelRequest struct {
	Label models.Label `json:"label"`
}
