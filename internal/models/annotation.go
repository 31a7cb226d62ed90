package models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Annotation is a labeled time interval on the video timeline. While an
// annotation is being created it has no EndTime yet and lives outside the
// interval store.
type Annotation struct {
	ID        string          `json:"id"`
	StartTime float64         `json:"start_time"` // Time in seconds
	EndTime   float64         `json:"end_time"`   // Time in seconds
	Label     *Label          `json:"label,omitempty"`
	Shape     json.RawMessage `json:"shape,omitempty"`

	// comments holds the original payload when it could not be decoded, so
	// that it survives a load/save round-trip untouched
	comments []Comment
}

// NewAnnotation creates an annotation with a fresh unique ID
func NewAnnotation(start, end float64) *Annotation {
	return &Annotation{
		ID:        uuid.New().String(),
		StartTime: start,
		EndTime:   end,
		Shape:     json.RawMessage(`{}`),
	}
}

// Duration returns the span of a finalized annotation in seconds
func (a *Annotation) Duration() float64 {
	return a.EndTime - a.StartTime
}

// HasLabel reports whether the annotation carries any label payload
func (a *Annotation) HasLabel() bool {
	return a.Label != nil || len(a.comments) > 0
}

// Classification returns the label used for comparisons. A missing or
// undecodable payload yields the empty label.
func (a *Annotation) Classification() Label {
	if a == nil || a.Label == nil {
		return Label{}
	}
	return *a.Label
}

// SetLabel replaces the label payload
func (a *Annotation) SetLabel(l Label) {
	c := l.Clone()
	a.Label = &c
	a.comments = nil
}

// CopyLabelFrom copies the label payload of another annotation, including an
// undecodable raw payload.
func (a *Annotation) CopyLabelFrom(other *Annotation) {
	if other.Label != nil {
		a.SetLabel(*other.Label)
		return
	}
	a.Label = nil
	a.comments = append([]Comment(nil), other.comments...)
}

// Clone returns a deep copy of the annotation
func (a *Annotation) Clone() *Annotation {
	out := *a
	if a.Label != nil {
		l := a.Label.Clone()
		out.Label = &l
	}
	out.Shape = append(json.RawMessage(nil), a.Shape...)
	out.comments = append([]Comment(nil), a.comments...)
	return &out
}

// String formats the interval for log lines
func (a *Annotation) String() string {
	return fmt.Sprintf("%.3fs-%.3fs (ID: %s)", a.StartTime, a.EndTime, a.ID)
}
