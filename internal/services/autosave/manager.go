package autosave

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/killallgit/labeler/internal/metrics"
	"github.com/killallgit/labeler/internal/models"
	"github.com/killallgit/labeler/internal/services/annotations"
	"github.com/killallgit/labeler/pkg/fsutil"
)

// Save triggers, used as the metrics label
const (
	TriggerMutation = "mutation"
	TriggerTimer    = "timer"
	TriggerLoad     = "load"
	TriggerManual   = "manual"
)

// FileSuffix ends the name of every snapshot file
const FileSuffix = "_autosave.json"

// Manager reads and writes per-video snapshots in a scratch directory
type Manager struct {
	dir string
}

// NewManager creates a manager rooted at dir, creating the directory
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create autosave directory: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// Dir returns the scratch directory
func (m *Manager) Dir() string {
	return m.dir
}

// PathFor returns the snapshot path for a video: <dir>/<stem>_autosave.json
func (m *Manager) PathFor(videoPath string) string {
	base := filepath.Base(videoPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(m.dir, stem+FileSuffix)
}

// Save writes a snapshot for the video. Failures are logged and counted but
// never returned; an empty video path is a no-op.
func (m *Manager) Save(videoPath string, items []*models.Annotation, videoHash int32) {
	m.save(TriggerManual, videoPath, items, videoHash)
}

func (m *Manager) save(trigger, videoPath string, items []*models.Annotation, videoHash int32) {
	if videoPath == "" {
		return
	}

	start := time.Now()
	if err := m.write(videoPath, items, videoHash); err != nil {
		log.Printf("[ERROR] Autosave failed for %s: %v", videoPath, err)
		metrics.RecordAutosave(trigger, metrics.StatusError, time.Since(start).Seconds())
		return
	}
	metrics.RecordAutosave(trigger, metrics.StatusSuccess, time.Since(start).Seconds())
	log.Printf("[DEBUG] Autosaved %d annotation(s) for %s (%s)", len(items), videoPath, trigger)
}

func (m *Manager) write(videoPath string, items []*models.Annotation, videoHash int32) error {
	snap, err := models.NewSnapshot(items, videoHash, videoPath)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return fsutil.WriteFileAtomic(m.PathFor(videoPath), data, 0644)
}

// Check looks up the snapshot for a video. It returns nil when there is none,
// when it cannot be decoded or when it was written for a different path that
// shares the same stem. matches reports whether the stored hash equals
// videoHash.
func (m *Manager) Check(videoPath string, videoHash int32) (*models.Snapshot, bool) {
	if videoPath == "" {
		return nil, false
	}

	path := m.PathFor(videoPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[WARN] Failed to read autosave %s: %v", path, err)
		}
		return nil, false
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("[WARN] Ignoring corrupt autosave %s: %v", path, err)
		return nil, false
	}
	if snap.VideoPath != videoPath {
		log.Printf("[DEBUG] Autosave %s belongs to %s, not %s", path, snap.VideoPath, videoPath)
		return nil, false
	}
	return &snap, snap.VideoHash == videoHash
}

// Delete removes the snapshot for a video. A missing snapshot is not an error.
func (m *Manager) Delete(videoPath string) error {
	if videoPath == "" {
		return nil
	}
	if err := os.Remove(m.PathFor(videoPath)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete autosave: %w", err)
	}
	return nil
}

// Hook returns an engine mutation hook that snapshots the session after every
// successful mutation
func (m *Manager) Hook() annotations.MutationHook {
	return func(ev annotations.ChangeEvent) {
		trigger := TriggerMutation
		if ev.Op == annotations.OpLoad {
			trigger = TriggerLoad
		}
		m.save(trigger, ev.VideoPath, ev.Annotations, ev.VideoHash)
	}
}

// SessionSaver returns a scheduler callback that snapshots the session
func (m *Manager) SessionSaver(session *annotations.Session) func() {
	return func() {
		state := session.State()
		m.save(TriggerTimer, state.VideoPath, state.Annotations, state.VideoHash)
	}
}
