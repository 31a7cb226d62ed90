package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/labeler/internal/models"
	"github.com/killallgit/labeler/internal/services/catalog"
)

func boolPtr(b bool) *bool { return &b }

func TestRequestUI_Confirm(t *testing.T) {
	tests := []struct {
		name        string
		confirm     *bool
		want        bool
		wantPending bool
	}{
		{"unanswered records the first prompt", nil, false, true},
		{"answered yes", boolPtr(true), true, false},
		{"answered no", boolPtr(false), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := &requestUI{confirm: tt.confirm}
			assert.Equal(t, tt.want, ui.Confirm("First", "one"))
			ui.Confirm("Second", "two")

			if tt.wantPending {
				require.NotNil(t, ui.pending)
				assert.Equal(t, "First", ui.pending.Title)
			} else {
				assert.Nil(t, ui.pending)
			}
		})
	}
}

func TestRequestUI_PromptLabelEdit(t *testing.T) {
	incompatible := models.Label{Posture: "Standing", PAType: "Sleep"}

	t.Run("returns a copy of the request label", func(t *testing.T) {
		label := models.Label{Posture: "Lying", HighLevelBehavior: []string{"Sleeping"}}
		ui := &requestUI{label: &label, catalog: catalog.Default()}

		got, ok := ui.PromptLabelEdit(models.Label{}, false)
		require.True(t, ok)
		got.HighLevelBehavior[0] = "changed"
		assert.Equal(t, "Sleeping", label.HighLevelBehavior[0])
	})

	t.Run("incompatible label without answer", func(t *testing.T) {
		ui := &requestUI{label: &incompatible, catalog: catalog.Default()}
		_, ok := ui.PromptLabelEdit(models.Label{}, false)
		assert.False(t, ok)
		require.NotNil(t, ui.pending)
		assert.Equal(t, catalog.ConfirmSaveTitle, ui.pending.Title)
	})

	t.Run("alerts disabled", func(t *testing.T) {
		ui := &requestUI{label: &incompatible, catalog: catalog.Default(), disableAlerts: true}
		_, ok := ui.PromptLabelEdit(models.Label{}, false)
		assert.True(t, ok)
	})

	t.Run("no label asks for the form", func(t *testing.T) {
		ui := &requestUI{}
		_, ok := ui.PromptLabelEdit(models.Label{Posture: "Sitting"}, true)
		assert.False(t, ok)
		require.NotNil(t, ui.labelPrompt)
		assert.Equal(t, "Sitting", ui.labelPrompt.Initial.Posture)
		assert.True(t, ui.labelPrompt.IsNew)
	})
}

func TestRequestPlayer(t *testing.T) {
	playback := &Playback{}
	dur := int64(90000)
	playback.Set(4000, &dur)

	p := newRequestPlayer(playback, nil)
	assert.Equal(t, int64(4000), p.PositionMs())
	assert.Equal(t, int64(90000), p.DurationMs())

	override := int64(7000)
	p = newRequestPlayer(playback, &override)
	assert.Equal(t, int64(7000), p.PositionMs())
	pos, _ := playback.Get()
	assert.Equal(t, int64(7000), pos, "a reported position is remembered")

	p.Seek(1500)
	require.NotNil(t, p.seekMs)
	assert.Equal(t, int64(1500), *p.seekMs)
	pos, _ = playback.Get()
	assert.Equal(t, int64(1500), pos)

	playback.Set(-5, nil)
	pos, _ = playback.Get()
	assert.Zero(t, pos)

	negative := int64(-5000)
	p = newRequestPlayer(playback, &negative)
	assert.Zero(t, p.PositionMs(), "the engine never sees a position before the start")
}
