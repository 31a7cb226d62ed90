package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedRecord is returned when an annotation record lacks required fields
var ErrMalformedRecord = errors.New("malformed annotation record")

// Range is the serialized time span of an annotation
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Comment carries the JSON-encoded label payload in Body
type Comment struct {
	Body string `json:"body"`
}

// AnnotationRecord is the on-disk shape of one annotation
type AnnotationRecord struct {
	ID       string          `json:"id"`
	Range    Range           `json:"range"`
	Shape    json.RawMessage `json:"shape"`
	Comments []Comment       `json:"comments"`
}

// Snapshot is the document written by autosave, export (labels.json) and
// read by the annotations loader. Records are kept raw so that malformed
// entries can be skipped or rejected individually.
type Snapshot struct {
	Annotations []json.RawMessage `json:"annotations"`
	VideoHash   int32             `json:"videoHash"`
	VideoPath   string            `json:"video_path,omitempty"`
}

// ToRecord converts an annotation to its on-disk record
func (a *Annotation) ToRecord() (AnnotationRecord, error) {
	rec := AnnotationRecord{
		ID:       a.ID,
		Range:    Range{Start: a.StartTime, End: a.EndTime},
		Shape:    a.Shape,
		Comments: []Comment{},
	}
	if len(rec.Shape) == 0 {
		rec.Shape = json.RawMessage(`{}`)
	}
	switch {
	case a.Label != nil:
		body, err := a.Label.EncodeBody()
		if err != nil {
			return AnnotationRecord{}, err
		}
		rec.Comments = []Comment{{Body: body}}
	case len(a.comments) > 0:
		rec.Comments = append(rec.Comments, a.comments...)
	}
	return rec, nil
}

// NewSnapshot builds a snapshot document from annotations
func NewSnapshot(annotations []*Annotation, videoHash int32, videoPath string) (*Snapshot, error) {
	snap := &Snapshot{
		Annotations: make([]json.RawMessage, 0, len(annotations)),
		VideoHash:   videoHash,
		VideoPath:   videoPath,
	}
	for _, a := range annotations {
		rec, err := a.ToRecord()
		if err != nil {
			return nil, fmt.Errorf("annotation %s: %w", a.ID, err)
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("annotation %s: %w", a.ID, err)
		}
		snap.Annotations = append(snap.Annotations, data)
	}
	return snap, nil
}

// rawRecord detects absent fields, which the typed record cannot
type rawRecord struct {
	ID    *string `json:"id"`
	Range *struct {
		Start *float64 `json:"start"`
		End   *float64 `json:"end"`
	} `json:"range"`
	Shape    json.RawMessage `json:"shape"`
	Comments *[]Comment      `json:"comments"`
}

// DecodeRecord turns one raw record into an annotation. In strict mode the
// shape and comments keys are required and the label payload must decode;
// otherwise a missing shape defaults to {} and an undecodable payload is kept
// verbatim.
func DecodeRecord(raw json.RawMessage, strict bool) (*Annotation, error) {
	var rec rawRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if rec.ID == nil || rec.Range == nil || rec.Range.Start == nil || rec.Range.End == nil {
		return nil, fmt.Errorf("%w: id and range.start/range.end are required", ErrMalformedRecord)
	}
	if strict && (rec.Shape == nil || rec.Comments == nil) {
		return nil, fmt.Errorf("%w: shape and comments are required", ErrMalformedRecord)
	}

	a := &Annotation{
		ID:        *rec.ID,
		StartTime: *rec.Range.Start,
		EndTime:   *rec.Range.End,
		Shape:     rec.Shape,
	}
	if len(a.Shape) == 0 || string(a.Shape) == "null" {
		a.Shape = json.RawMessage(`{}`)
	}
	if rec.Comments == nil || len(*rec.Comments) == 0 {
		return a, nil
	}

	comments := *rec.Comments
	label, err := DecodeLabelBody(comments[0].Body)
	if err != nil {
		if strict {
			return nil, fmt.Errorf("%w: annotation %s: %v", ErrMalformedRecord, a.ID, err)
		}
		a.comments = append([]Comment(nil), comments...)
		return a, nil
	}
	a.Label = &label
	return a, nil
}

// DecodeAll decodes every record of the snapshot. In strict mode the first
// malformed record aborts with an error; otherwise malformed records are
// skipped and counted.
func (s *Snapshot) DecodeAll(strict bool) ([]*Annotation, int, error) {
	out := make([]*Annotation, 0, len(s.Annotations))
	skipped := 0
	for i, raw := range s.Annotations {
		a, err := DecodeRecord(raw, strict)
		if err != nil {
			if strict {
				return nil, 0, fmt.Errorf("record %d: %w", i, err)
			}
			skipped++
			continue
		}
		out = append(out, a)
	}
	return out, skipped, nil
}
