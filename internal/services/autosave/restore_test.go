package autosave

import (
	"encoding/json"
	"testing"

	"github.com/killallgit/labeler/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(title, message string) bool {
	args := m.Called(title, message)
	return args.Bool(0)
}

func TestRecoveryPrompt(t *testing.T) {
	tests := []struct {
		name        string
		hash        int32
		matches     bool
		wantWarning bool
	}{
		{"hash matches", 1661, true, false},
		{"hash differs", 1661, false, true},
		{"video could not be hashed", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := RecoveryPrompt(tt.hash, tt.matches)
			assert.Contains(t, msg, "An autosaved version of the annotations was found.")
			assert.Contains(t, msg, "Would you like to restore from autosave or start over?")
			if tt.wantWarning {
				assert.Contains(t, msg, "appears to have changed since the autosave")
			} else {
				assert.NotContains(t, msg, "appears to have changed")
			}
		})
	}
}

func TestRestore_SkipsMalformedRecords(t *testing.T) {
	snap := &models.Snapshot{
		Annotations: []json.RawMessage{
			json.RawMessage(`{"id":"ok","range":{"start":0,"end":5},"shape":{},"comments":[]}`),
			json.RawMessage(`{"range":{"start":5,"end":6}}`),
			json.RawMessage(`{"id":"no-range"}`),
			json.RawMessage(`{"id":"no-shape","range":{"start":6,"end":8}}`),
		},
	}

	items, loaded, skipped := Restore(snap)
	assert.Equal(t, 2, loaded)
	assert.Equal(t, 2, skipped)
	require.Len(t, items, 2)
	assert.Equal(t, "ok", items[0].ID)
	assert.Equal(t, "no-shape", items[1].ID)

	items, loaded, skipped = Restore(nil)
	assert.Nil(t, items)
	assert.Zero(t, loaded)
	assert.Zero(t, skipped)
}

func TestManager_Recover(t *testing.T) {
	video := "/videos/session1.mp4"

	t.Run("nothing to recover", func(t *testing.T) {
		m := newTestManager(t)
		confirm := new(MockConfirmer)

		items, restored := m.Recover(video, 1661, confirm)
		assert.Nil(t, items)
		assert.False(t, restored)
		confirm.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
	})

	t.Run("accept restores", func(t *testing.T) {
		m := newTestManager(t)
		m.Save(video, []*models.Annotation{labeled(0, 10, "Standing")}, 1661)

		confirm := new(MockConfirmer)
		confirm.On("Confirm", RecoveryTitle, RecoveryPrompt(1661, true)).Return(true)

		items, restored := m.Recover(video, 1661, confirm)
		assert.True(t, restored)
		require.Len(t, items, 1)
		assert.Equal(t, "Standing", items[0].Classification().Posture)
		assert.FileExists(t, m.PathFor(video), "snapshot kept after restore")
		confirm.AssertExpectations(t)
	})

	t.Run("changed video warns", func(t *testing.T) {
		m := newTestManager(t)
		m.Save(video, []*models.Annotation{labeled(0, 10, "Standing")}, 1661)

		confirm := new(MockConfirmer)
		confirm.On("Confirm", RecoveryTitle, RecoveryPrompt(42, false)).Return(true)

		_, restored := m.Recover(video, 42, confirm)
		assert.True(t, restored)
		confirm.AssertExpectations(t)
	})

	t.Run("decline deletes snapshot", func(t *testing.T) {
		m := newTestManager(t)
		m.Save(video, []*models.Annotation{labeled(0, 10, "Standing")}, 1661)

		confirm := new(MockConfirmer)
		confirm.On("Confirm", RecoveryTitle, mock.Anything).Return(false)

		items, restored := m.Recover(video, 1661, confirm)
		assert.Nil(t, items)
		assert.False(t, restored)
		assert.NoFileExists(t, m.PathFor(video))
	})
}
