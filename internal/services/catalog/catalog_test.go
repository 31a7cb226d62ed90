package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/killallgit/labeler/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Contains(t, c.Postures, "Standing")
	assert.Contains(t, c.Postures, "Sitting")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
		check   func(t *testing.T, c *Catalog)
	}{
		{
			name: "empty path uses built-in",
			path: "",
			check: func(t *testing.T, c *Catalog) {
				assert.Equal(t, Default().PATypes, c.PATypes)
			},
		},
		{
			name: "custom catalog",
			path: write("ok.yaml", "postures: [Up, Down]\nhigh_level_behaviors: [Rest]\npa_types: [Still]\npa_to_posture:\n  Still: [Down]\npa_to_hlb:\n  Still: Rest\n"),
			check: func(t *testing.T, c *Catalog) {
				assert.Equal(t, []string{"Up", "Down"}, c.Postures)
				assert.Equal(t, "Rest", c.PAToHLB["Still"])
			},
		},
		{
			name:    "missing postures",
			path:    write("empty.yaml", "high_level_behaviors: [Rest]\npa_types: [Still]\n"),
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "mapping references unknown PA type",
			path:    write("badpa.yaml", "postures: [Up]\nhigh_level_behaviors: [Rest]\npa_types: [Still]\npa_to_posture:\n  Fast: [Up]\n"),
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "mapping references unknown posture",
			path:    write("badpos.yaml", "postures: [Up]\nhigh_level_behaviors: [Rest]\npa_types: [Still]\npa_to_posture:\n  Still: [Sideways]\n"),
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "mapping references unknown hlb",
			path:    write("badhlb.yaml", "postures: [Up]\nhigh_level_behaviors: [Rest]\npa_types: [Still]\npa_to_hlb:\n  Still: Dance\n"),
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "not yaml",
			path:    write("broken.yaml", "postures: [Up\n"),
			wantErr: ErrInvalidCatalog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestCatalog_Options(t *testing.T) {
	c := Default()

	tests := []struct {
		category string
		sentinel string
	}{
		{models.CategoryPosture, PostureUnlabeled},
		{models.CategoryHighLevelBehavior, HLBUnlabeled},
		{models.CategoryPAType, PATypeUnlabeled},
		{models.CategoryBehavioralParams, BehavioralParamsUnlabeled},
		{models.CategoryExperimentalSituation, ExperimentalSituationUnlabeled},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			opts := c.Options(tt.category)
			require.NotEmpty(t, opts)
			assert.Equal(t, tt.sentinel, opts[0])
		})
	}

	assert.Nil(t, c.Options(models.CategorySpecialNotes))
}

func TestCatalog_ValidateLabel(t *testing.T) {
	c := Default()

	assert.NoError(t, c.ValidateLabel(models.Label{
		Posture:           "Standing",
		HighLevelBehavior: []string{"Walking", HLBUnlabeled},
		PAType:            PATypeUnlabeled,
		SpecialNotes:      "anything goes here",
	}))

	err := c.ValidateLabel(models.Label{Posture: "Hovering", HighLevelBehavior: []string{"Juggling"}})
	require.ErrorIs(t, err, ErrUnknownValue)
	assert.Contains(t, err.Error(), `POSTURE="Hovering"`)
	assert.Contains(t, err.Error(), `HIGH LEVEL BEHAVIOR="Juggling"`)
}
