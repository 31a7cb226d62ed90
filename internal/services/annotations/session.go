package annotations

import (
	"sync"

	"github.com/killallgit/labeler/internal/models"
)

// Session holds the editing state for one open video: the interval store,
// the in-progress annotation slot and the last-used label defaults.
// All access goes through the embedded mutex so that timer-driven autosave
// reads never race user-driven mutations.
type Session struct {
	mu sync.Mutex

	store     *Store
	current   *models.Annotation
	lastUsed  models.Label
	videoPath string
	videoHash int32
	colors    *PostureColors
}

// SessionState is a point-in-time copy of a session
type SessionState struct {
	VideoPath     string               `json:"video_path"`
	VideoHash     int32                `json:"video_hash"`
	Annotations   []*models.Annotation `json:"annotations"`
	Current       *models.Annotation   `json:"current,omitempty"`
	LastUsedLabel models.Label         `json:"last_used_label"`
}

// NewSession creates an empty session with no video attached
func NewSession() *Session {
	return &Session{
		store:  NewStore(),
		colors: NewPostureColors(nil),
	}
}

// Reset attaches a video and replaces the store content. The in-progress
// annotation is discarded; last-used label defaults are kept.
func (s *Session) Reset(videoPath string, videoHash int32, items []*models.Annotation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.videoPath = videoPath
	s.videoHash = videoHash
	s.current = nil
	s.store.Replace(items)
}

// VideoPath returns the path of the attached video
func (s *Session) VideoPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoPath
}

// VideoHash returns the size fingerprint of the attached video
func (s *Session) VideoHash() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoHash
}

// SetVideoHash updates the fingerprint, e.g. after the file changed on disk
func (s *Session) SetVideoHash(hash int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoHash = hash
}

// Annotations returns a deep copy of the finalized annotations in start order
func (s *Session) Annotations() []*models.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot()
}

// LastUsedLabel returns the label seeded into new annotations
func (s *Session) LastUsedLabel() models.Label {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed.Clone()
}

// State returns a deep copy of the full session state
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := SessionState{
		VideoPath:     s.videoPath,
		VideoHash:     s.videoHash,
		Annotations:   s.store.Snapshot(),
		LastUsedLabel: s.lastUsed.Clone(),
	}
	if s.current != nil {
		state.Current = s.current.Clone()
	}
	return state
}

// PostureColor returns the timeline color assigned to a posture value
func (s *Session) PostureColor(posture string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.colors.Color(posture)
}

// changeEvent must be called with the lock held
func (s *Session) changeEvent(op string) ChangeEvent {
	return ChangeEvent{
		Op:          op,
		VideoPath:   s.videoPath,
		VideoHash:   s.videoHash,
		Annotations: s.store.Snapshot(),
	}
}
