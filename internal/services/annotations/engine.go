package annotations

import (
	"errors"
	"fmt"
	"log"
	"math"
	"slices"

	"github.com/killallgit/labeler/internal/metrics"
	"github.com/killallgit/labeler/internal/models"
)

// Operation names reported to hooks and metrics
const (
	OpStart         = "start"
	OpStop          = "stop"
	OpEdit          = "edit"
	OpEditDefaults  = "edit_defaults"
	OpCancel        = "cancel"
	OpDelete        = "delete"
	OpSplit         = "split"
	OpMergePrevious = "merge_previous"
	OpMergeNext     = "merge_next"
	OpNavigate      = "navigate"
	OpLoad          = "load"
)

const (
	// NavigationTolerance keeps a seek from landing on the boundary the
	// playhead already sits on
	NavigationTolerance = 0.05

	// MaxMergeGap is the largest gap in seconds two annotations may have and
	// still be merged
	MaxMergeGap = 1.0

	// MinSplitSegment is the shortest segment a split may produce, in seconds
	MinSplitSegment = 1.0
)

// Engine runs the annotation lifecycle operations against a session. An
// engine is cheap to build; callers holding request-scoped player or UI
// collaborators create one per request around a shared session.
type Engine struct {
	session *Session
	player  Player
	ui      UI
	hooks   []MutationHook
}

// EngineOption is a functional option for configuring the engine
type EngineOption func(*Engine)

// WithHooks registers hooks run after every successful mutation
func WithHooks(hooks ...MutationHook) EngineOption {
	return func(e *Engine) {
		for _, h := range hooks {
			if h != nil {
				e.hooks = append(e.hooks, h)
			}
		}
	}
}

// NewEngine creates an engine bound to the given collaborators
func NewEngine(session *Session, player Player, ui UI, opts ...EngineOption) *Engine {
	e := &Engine{
		session: session,
		player:  player,
		ui:      ui,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Session returns the session the engine operates on
func (e *Engine) Session() *Session {
	return e.session
}

// Toggle starts a new annotation at the rounded playhead position, or
// finalizes the in-progress one there.
func (e *Engine) Toggle() error {
	s := e.session
	s.mu.Lock()

	t := math.RoundToEven(e.position())

	if s.current == nil {
		if s.store.Overlaps(t, t, "") {
			s.mu.Unlock()
			return e.reject(OpStart, userError(ErrOverlap, "Overlap Detected",
				"Cannot start an annotation within an existing one."))
		}
		a := models.NewAnnotation(t, 0)
		a.SetLabel(s.lastUsed.WithoutNotes())
		s.current = a
		log.Printf("[DEBUG] Started annotation %s at %.3fs", a.ID, t)
		return e.commit(OpStart)
	}

	cur := s.current
	if t <= cur.StartTime {
		s.mu.Unlock()
		return e.reject(OpStop, userError(ErrInvalidEndTime, "Invalid End Time",
			"End time (%.2fs) must be after start time (%.2fs).", t, cur.StartTime))
	}
	if s.store.Overlaps(cur.StartTime, t, cur.ID) {
		s.mu.Unlock()
		return e.reject(OpStop, userError(ErrOverlap, "Overlap Detected",
			"Annotations cannot overlap."))
	}

	cur.EndTime = t
	if cur.Label != nil {
		s.lastUsed = cur.Label.WithoutNotes()
	}
	s.store.Add(cur)
	s.current = nil
	log.Printf("[DEBUG] Finalized annotation %s", cur)
	return e.commit(OpStop)
}

// Edit opens the label form for the annotation under the playhead, falling
// back to the in-progress annotation. The confirmed label also becomes the
// default for new annotations, without its notes.
func (e *Engine) Edit() error {
	s := e.session
	s.mu.Lock()

	var target *models.Annotation
	isNew := false
	if idx := s.store.FindContaining(e.position()); idx >= 0 {
		target = s.store.At(idx)
	} else if s.current != nil {
		target = s.current
		isNew = true
	}
	if target == nil {
		s.mu.Unlock()
		return e.reject(OpEdit, userError(ErrNothingToEdit, "Edit Label",
			"There is no annotation at the current position to edit."))
	}

	initial := s.lastUsed.Clone()
	if target.Label != nil {
		initial = target.Label.Clone()
	}
	label, ok := e.ui.PromptLabelEdit(initial, isNew)
	if !ok || label == nil {
		s.mu.Unlock()
		return e.reject(OpEdit, ErrDeclined)
	}
	if err := label.Validate(); err != nil {
		s.mu.Unlock()
		return e.reject(OpEdit, userError(err, "Invalid Label", "%v", err))
	}

	target.SetLabel(*label)
	s.lastUsed = label.WithoutNotes()
	log.Printf("[DEBUG] Updated label of annotation %s", target.ID)
	return e.commit(OpEdit)
}

// EditDefaults opens the label form on the last-used label and stores the
// result as the default for new annotations
func (e *Engine) EditDefaults() error {
	s := e.session
	s.mu.Lock()

	label, ok := e.ui.PromptLabelEdit(s.lastUsed.Clone(), true)
	if !ok || label == nil {
		s.mu.Unlock()
		return e.reject(OpEditDefaults, ErrDeclined)
	}
	if err := label.Validate(); err != nil {
		s.mu.Unlock()
		return e.reject(OpEditDefaults, userError(err, "Invalid Label", "%v", err))
	}
	s.lastUsed = label.WithoutNotes()
	s.mu.Unlock()

	metrics.RecordOperation(OpEditDefaults, metrics.StatusSuccess)
	return nil
}

// Cancel discards the in-progress annotation. It is a no-op when none exists.
func (e *Engine) Cancel() error {
	s := e.session
	s.mu.Lock()

	if s.current == nil {
		s.mu.Unlock()
		return nil
	}
	log.Printf("[DEBUG] Cancelled annotation %s", s.current.ID)
	s.current = nil
	return e.commit(OpCancel)
}

// Delete removes the annotation under the playhead after confirmation
func (e *Engine) Delete() error {
	s := e.session
	s.mu.Lock()

	idx := s.store.FindContaining(e.position())
	if idx < 0 {
		s.mu.Unlock()
		return e.reject(OpDelete, userError(ErrNoAnnotation, "Delete Label",
			"The playback position is not currently inside any annotation."))
	}
	target := s.store.At(idx)

	if !e.ui.Confirm("Confirm Delete",
		fmt.Sprintf("Delete annotation from %.2fs to %.2fs?", target.StartTime, target.EndTime)) {
		s.mu.Unlock()
		return e.reject(OpDelete, ErrDeclined)
	}
	if err := s.store.Remove(target.ID); err != nil {
		s.mu.Unlock()
		return e.reject(OpDelete, err)
	}
	log.Printf("[DEBUG] Deleted annotation %s", target)
	return e.commit(OpDelete)
}

// Split cuts the annotation under the playhead at the rounded position. The
// original keeps [start, t]; a new annotation [t, end] copies its label.
func (e *Engine) Split() error {
	s := e.session
	s.mu.Lock()

	pos := e.position()
	t := math.RoundToEven(pos)

	idx := s.store.FindContaining(pos)
	if idx < 0 {
		s.mu.Unlock()
		return e.reject(OpSplit, userError(ErrNoAnnotation, "Split Failed",
			"Cannot split: Playhead is not inside an annotation."))
	}
	target := s.store.At(idx)

	if t <= target.StartTime || t >= target.EndTime {
		s.mu.Unlock()
		return e.reject(OpSplit, userError(ErrSplitOutOfRange, "Invalid Split",
			"Split point (%.2fs) must be strictly inside the annotation.", t))
	}
	if t-target.StartTime < MinSplitSegment || target.EndTime-t < MinSplitSegment {
		s.mu.Unlock()
		return e.reject(OpSplit, userError(ErrSplitTooSmall, "Invalid Split",
			"Split results in a segment shorter than %.0fs.", MinSplitSegment))
	}

	tail := models.NewAnnotation(t, target.EndTime)
	tail.CopyLabelFrom(target)
	target.EndTime = t
	s.store.Add(tail)
	log.Printf("[DEBUG] Split annotation into %s and %s", target, tail)
	return e.commit(OpSplit)
}

// MergeWithPrevious joins the annotation under the playhead with the one
// before it. The label of the later annotation wins.
func (e *Engine) MergeWithPrevious() error {
	return e.merge(OpMergePrevious, -1)
}

// MergeWithNext joins the annotation under the playhead with the one after
// it. The label of the earlier annotation wins.
func (e *Engine) MergeWithNext() error {
	return e.merge(OpMergeNext, 1)
}

func (e *Engine) merge(op string, direction int) error {
	s := e.session
	s.mu.Lock()

	sorted := s.store.Sorted()
	idx := s.store.FindContaining(e.position())
	if idx < 0 {
		s.mu.Unlock()
		return e.reject(op, userError(ErrNoAnnotation, "Merge Failed",
			"Cannot merge: No annotation at the current position."))
	}

	neighbor := idx + direction
	if neighbor < 0 {
		s.mu.Unlock()
		return e.reject(op, userError(ErrNoPrevious, "Merge Failed",
			"Cannot merge: No previous annotation exists."))
	}
	if neighbor >= len(sorted) {
		s.mu.Unlock()
		return e.reject(op, userError(ErrNoNext, "Merge Failed",
			"Cannot merge: No next annotation exists."))
	}

	current, other := sorted[idx], sorted[neighbor]
	earlier, later := other, current
	which := "later"
	if direction > 0 {
		earlier, later = current, other
		which = "earlier"
	}

	gap := later.StartTime - earlier.EndTime
	if math.Abs(gap) > MaxMergeGap {
		s.mu.Unlock()
		return e.reject(op, userError(ErrNotAdjacent, "Invalid Merge",
			"Cannot merge: Annotations are not adjacent (Gap: %.1fs).", gap))
	}

	if !earlier.Classification().SameClassification(later.Classification()) {
		msg := fmt.Sprintf("The annotations have different labels. Merging will use the labels from the "+
			"current annotation (the %s one). Continue?", which)
		if !e.ui.Confirm("Label Conflict", msg) {
			s.mu.Unlock()
			return e.reject(op, ErrDeclined)
		}
	}

	merged := models.NewAnnotation(earlier.StartTime, later.EndTime)
	switch {
	case current.HasLabel():
		merged.CopyLabelFrom(current)
	case other.HasLabel():
		merged.CopyLabelFrom(other)
	}
	if err := s.store.RemoveAll(earlier.ID, later.ID); err != nil {
		s.mu.Unlock()
		return e.reject(op, err)
	}
	s.store.Add(merged)
	log.Printf("[DEBUG] Merged %s and %s into %s", earlier, later, merged)
	return e.commit(op)
}

// NavigatePrevious seeks to the nearest boundary before the playhead, or to
// the start of the media when there is none. It returns the target position.
func (e *Engine) NavigatePrevious() (float64, bool) {
	s := e.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Len() == 0 {
		return 0, false
	}
	pos := e.position()
	target := 0.0
	for _, p := range slices.Backward(s.store.BoundaryPoints()) {
		if p < pos-NavigationTolerance {
			target = p
			break
		}
	}
	e.player.Seek(int64(target * 1000))
	metrics.RecordOperation(OpNavigate, metrics.StatusSuccess)
	return target, true
}

// NavigateNext seeks to the nearest boundary after the playhead. It does
// nothing when the playhead is past the last boundary.
func (e *Engine) NavigateNext() (float64, bool) {
	s := e.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Len() == 0 {
		return 0, false
	}
	pos := e.position()
	for _, p := range s.store.BoundaryPoints() {
		if p > pos+NavigationTolerance {
			e.player.Seek(int64(p * 1000))
			metrics.RecordOperation(OpNavigate, metrics.StatusSuccess)
			return p, true
		}
	}
	return 0, false
}

// Replace swaps the store content for a loaded annotation set and discards
// the in-progress annotation
func (e *Engine) Replace(items []*models.Annotation) error {
	s := e.session
	s.mu.Lock()
	s.current = nil
	s.store.Replace(items)
	log.Printf("[INFO] Loaded %d annotations", len(items))
	return e.commit(OpLoad)
}

func (e *Engine) position() float64 {
	return float64(e.player.PositionMs()) / 1000.0
}

// commit must be called with the session lock held; it releases it
func (e *Engine) commit(op string) error {
	ev := e.session.changeEvent(op)
	e.session.mu.Unlock()

	metrics.RecordOperation(op, metrics.StatusSuccess)
	metrics.SetAnnotationCount(len(ev.Annotations))
	e.ui.NotifyTimelineChanged()
	for _, h := range e.hooks {
		h(ev)
	}
	return nil
}

// reject reports a failed operation. Must be called without the session lock.
func (e *Engine) reject(op string, err error) error {
	var ue *UserError
	switch {
	case errors.Is(err, ErrDeclined):
		metrics.RecordOperation(op, metrics.StatusDeclined)
	case errors.As(err, &ue):
		metrics.RecordOperation(op, metrics.StatusRejected)
		log.Printf("[WARN] %s rejected: %s", op, ue.Message)
		e.ui.Warn(ue.Title, ue.Message)
	default:
		metrics.RecordOperation(op, metrics.StatusError)
		log.Printf("[ERROR] %s failed: %v", op, err)
	}
	return err
}
