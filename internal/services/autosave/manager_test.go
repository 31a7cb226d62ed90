package autosave

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/killallgit/labeler/internal/metrics"
	"github.com/killallgit/labeler/internal/models"
	"github.com/killallgit/labeler/internal/services/annotations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "labeler_autosave"))
	require.NoError(t, err)
	return m
}

func labeled(start, end float64, posture string) *models.Annotation {
	a := models.NewAnnotation(start, end)
	a.SetLabel(models.Label{Posture: posture, HighLevelBehavior: []string{"Walking"}})
	return a
}

func TestNewManager_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "autosave")

	m, err := NewManager(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, m.Dir())
	assert.DirExists(t, dir)
}

func TestManager_PathFor(t *testing.T) {
	m := &Manager{dir: "/tmp/labeler_autosave"}

	tests := []struct {
		video string
		want  string
	}{
		{"/videos/session1.mp4", "/tmp/labeler_autosave/session1_autosave.json"},
		{"/videos/archive.tar.mov", "/tmp/labeler_autosave/archive.tar_autosave.json"},
		{"relative/noext", "/tmp/labeler_autosave/noext_autosave.json"},
	}

	for _, tt := range tests {
		t.Run(tt.video, func(t *testing.T) {
			assert.Equal(t, tt.want, m.PathFor(tt.video))
		})
	}
}

func TestManager_SaveAndCheck(t *testing.T) {
	m := newTestManager(t)
	video := "/videos/session1.mp4"
	items := []*models.Annotation{labeled(0, 10, "Standing"), labeled(10, 20, "Sitting")}

	m.Save(video, items, 1661)

	t.Run("file is indented json with path and hash", func(t *testing.T) {
		data, err := os.ReadFile(m.PathFor(video))
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n    \"annotations\"")

		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, video, doc["video_path"])
		assert.Equal(t, float64(1661), doc["videoHash"])
	})

	t.Run("matching hash", func(t *testing.T) {
		snap, matches := m.Check(video, 1661)
		require.NotNil(t, snap)
		assert.True(t, matches)

		restored, loaded, skipped := Restore(snap)
		assert.Equal(t, 2, loaded)
		assert.Equal(t, 0, skipped)
		require.Len(t, restored, 2)
		assert.Equal(t, items[0].ID, restored[0].ID)
		assert.Equal(t, "Sitting", restored[1].Classification().Posture)
		assert.Equal(t, []string{"Walking"}, restored[1].Classification().HighLevelBehavior)
	})

	t.Run("different hash", func(t *testing.T) {
		snap, matches := m.Check(video, 99)
		require.NotNil(t, snap)
		assert.False(t, matches)
	})

	t.Run("same stem different directory", func(t *testing.T) {
		snap, matches := m.Check("/elsewhere/session1.mp4", 1661)
		assert.Nil(t, snap)
		assert.False(t, matches)
	})
}

func TestManager_Check(t *testing.T) {
	m := newTestManager(t)

	t.Run("missing snapshot", func(t *testing.T) {
		snap, matches := m.Check("/videos/none.mp4", 1)
		assert.Nil(t, snap)
		assert.False(t, matches)
	})

	t.Run("corrupt snapshot", func(t *testing.T) {
		video := "/videos/corrupt.mp4"
		require.NoError(t, os.WriteFile(m.PathFor(video), []byte("{not json"), 0644))

		snap, matches := m.Check(video, 1)
		assert.Nil(t, snap)
		assert.False(t, matches)
	})

	t.Run("empty path", func(t *testing.T) {
		snap, _ := m.Check("", 0)
		assert.Nil(t, snap)
	})
}

func TestManager_SaveEmptyPathIsNoop(t *testing.T) {
	m := newTestManager(t)

	m.Save("", []*models.Annotation{labeled(0, 1, "Standing")}, 1)

	entries, err := os.ReadDir(m.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestManager_SaveFailureIsSwallowed(t *testing.T) {
	m := newTestManager(t)
	video := "/videos/blocked.mp4"
	require.NoError(t, os.Mkdir(m.PathFor(video), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(m.PathFor(video), "x"), []byte("x"), 0644))

	before := autosaveWrites(t, TriggerManual, metrics.StatusError)
	assert.NotPanics(t, func() { m.Save(video, nil, 1) })
	assert.Equal(t, before+1, autosaveWrites(t, TriggerManual, metrics.StatusError))
}

func TestManager_Delete(t *testing.T) {
	m := newTestManager(t)
	video := "/videos/session1.mp4"
	m.Save(video, nil, 1)
	require.FileExists(t, m.PathFor(video))

	require.NoError(t, m.Delete(video))
	assert.NoFileExists(t, m.PathFor(video))

	assert.NoError(t, m.Delete(video), "deleting twice is fine")
	assert.NoError(t, m.Delete(""))
}

func TestManager_Hook(t *testing.T) {
	m := newTestManager(t)
	hook := m.Hook()
	video := "/videos/hooked.mp4"

	hook(annotations.ChangeEvent{
		Op:          annotations.OpStop,
		VideoPath:   video,
		VideoHash:   7,
		Annotations: []*models.Annotation{labeled(1, 2, "Lying")},
	})

	snap, matches := m.Check(video, 7)
	require.NotNil(t, snap)
	assert.True(t, matches)
	assert.Len(t, snap.Annotations, 1)

	hook(annotations.ChangeEvent{Op: annotations.OpDelete, VideoPath: video, VideoHash: 7})
	snap, _ = m.Check(video, 7)
	require.NotNil(t, snap)
	assert.Empty(t, snap.Annotations)
}

func TestManager_SessionSaver(t *testing.T) {
	m := newTestManager(t)
	session := annotations.NewSession()
	save := m.SessionSaver(session)

	save()
	entries, err := os.ReadDir(m.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "no video attached")

	session.Reset("/videos/timer.mp4", 3, []*models.Annotation{labeled(0, 5, "Standing")})
	save()

	snap, matches := m.Check("/videos/timer.mp4", 3)
	require.NotNil(t, snap)
	assert.True(t, matches)
	assert.Len(t, snap.Annotations, 1)
}

// autosaveWrites reads the autosave counter from the process registry
func autosaveWrites(t *testing.T, trigger, status string) float64 {
	t.Helper()
	families, err := metrics.Registry().Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() != "labeler_autosave_writes_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["trigger"] == trigger && labels["status"] == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}
