package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel_EncodeBody(t *testing.T) {
	label := Label{
		Posture:               "Standing",
		HighLevelBehavior:     []string{"Walking"},
		PAType:                "Light",
		ExperimentalSituation: "Lab",
		SpecialNotes:          "note",
	}

	body, err := label.EncodeBody()
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &items))
	require.Len(t, items, 6)

	expectedOrder := []string{
		CategoryPosture, CategoryHighLevelBehavior, CategoryPAType,
		CategoryBehavioralParams, CategoryExperimentalSituation, CategorySpecialNotes,
	}
	for i, item := range items {
		assert.Equal(t, expectedOrder[i], item["category"])
	}
	assert.Equal(t, "Standing", items[0]["selectedValue"])
	assert.Equal(t, []any{"Walking"}, items[1]["selectedValue"])
	assert.Equal(t, []any{}, items[3]["selectedValue"], "empty sets serialize as empty lists")
}

func TestDecodeLabelBody(t *testing.T) {
	t.Run("round trips an encoded label", func(t *testing.T) {
		label := Label{
			Posture:           "Sitting",
			HighLevelBehavior: []string{"Eating", "Reading"},
			PAType:            "Sedentary",
			BehavioralParams:  []string{"Indoor"},
			SpecialNotes:      "hello",
		}
		body, err := label.EncodeBody()
		require.NoError(t, err)

		decoded, err := DecodeLabelBody(body)
		require.NoError(t, err)
		assert.Equal(t, label.Posture, decoded.Posture)
		assert.Equal(t, label.HighLevelBehavior, decoded.HighLevelBehavior)
		assert.Equal(t, label.BehavioralParams, decoded.BehavioralParams)
		assert.Equal(t, label.SpecialNotes, decoded.SpecialNotes)
	})

	t.Run("accepts null and scalar values for set categories", func(t *testing.T) {
		body := `[{"category":"POSTURE","selectedValue":null},{"category":"HIGH LEVEL BEHAVIOR","selectedValue":"Walking"}]`
		decoded, err := DecodeLabelBody(body)
		require.NoError(t, err)
		assert.Empty(t, decoded.Posture)
		assert.Equal(t, []string{"Walking"}, decoded.HighLevelBehavior)
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		_, err := DecodeLabelBody("comment 1")
		assert.Error(t, err)
	})
}

func TestLabel_SameClassification(t *testing.T) {
	base := Label{Posture: "Standing", HighLevelBehavior: []string{"B", "A"}, PAType: "Light"}

	tests := []struct {
		name  string
		other Label
		same  bool
	}{
		{"identical", base, true},
		{"hlb order ignored", Label{Posture: "Standing", HighLevelBehavior: []string{"A", "B"}, PAType: "Light"}, true},
		{"notes ignored", Label{Posture: "Standing", HighLevelBehavior: []string{"A", "B"}, PAType: "Light", SpecialNotes: "x"}, true},
		{"situation ignored", Label{Posture: "Standing", HighLevelBehavior: []string{"A", "B"}, PAType: "Light", ExperimentalSituation: "Home"}, true},
		{"posture differs", Label{Posture: "Sitting", HighLevelBehavior: []string{"A", "B"}, PAType: "Light"}, false},
		{"pa type differs", Label{Posture: "Standing", HighLevelBehavior: []string{"A", "B"}, PAType: "MVPA"}, false},
		{"hlb differs", Label{Posture: "Standing", HighLevelBehavior: []string{"A"}, PAType: "Light"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.same, base.SameClassification(tt.other))
		})
	}
}

func TestLabel_LabeledValues(t *testing.T) {
	label := Label{
		Posture:           "Posture_Unlabeled",
		HighLevelBehavior: []string{"HLB_Unlabeled", "Walking", ""},
	}
	assert.Empty(t, label.LabeledValues(CategoryPosture))
	assert.Equal(t, []string{"Walking"}, label.LabeledValues(CategoryHighLevelBehavior))
}

func TestLabel_Validate(t *testing.T) {
	assert.NoError(t, Label{SpecialNotes: strings.Repeat("a", MaxNotesLength)}.Validate())
	assert.Error(t, Label{SpecialNotes: strings.Repeat("a", MaxNotesLength+1)}.Validate())
}

func TestLabel_WithoutNotes(t *testing.T) {
	label := Label{Posture: "Standing", HighLevelBehavior: []string{"Walking"}, SpecialNotes: "keep out"}
	cleared := label.WithoutNotes()

	assert.Empty(t, cleared.SpecialNotes)
	assert.Equal(t, "keep out", label.SpecialNotes)

	cleared.HighLevelBehavior[0] = "Running"
	assert.Equal(t, "Walking", label.HighLevelBehavior[0], "clone must not alias the original")
}
