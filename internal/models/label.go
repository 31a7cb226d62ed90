package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Category keys as they appear in the serialized label payload. The spelling
// and casing match the external schema consumers already read.
const (
	CategoryPosture               = "POSTURE"
	CategoryHighLevelBehavior     = "HIGH LEVEL BEHAVIOR"
	CategoryPAType                = "PA TYPE"
	CategoryBehavioralParams      = "Behavioral Parameters"
	CategoryExperimentalSituation = "Experimental situation"
	CategorySpecialNotes          = "Special Notes"
)

// Categories lists every category key in serialization order
var Categories = []string{
	CategoryPosture,
	CategoryHighLevelBehavior,
	CategoryPAType,
	CategoryBehavioralParams,
	CategoryExperimentalSituation,
	CategorySpecialNotes,
}

// UnlabeledSuffix marks the "nothing selected" sentinel value of a category
const UnlabeledSuffix = "_Unlabeled"

// MaxNotesLength is the maximum number of characters allowed in special notes
const MaxNotesLength = 255

// Label is the structured six-category payload attached to an annotation
type Label struct {
	Posture               string   `json:"posture"`
	HighLevelBehavior     []string `json:"hlb"`
	PAType                string   `json:"pa_type"`
	BehavioralParams      []string `json:"behavioral_params"`
	ExperimentalSituation string   `json:"exp_situation"`
	SpecialNotes          string   `json:"special_notes"`
}

// CategoryValue is one entry of the legacy ordered category/value list.
// SelectedValue is a string for single-valued categories and a list of
// strings for the multi-valued ones.
type CategoryValue struct {
	Category      string `json:"category"`
	SelectedValue any    `json:"selectedValue"`
}

// Validate checks field constraints on the label
func (l Label) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.SpecialNotes, validation.RuneLength(0, MaxNotesLength)),
	)
}

// Clone returns a deep copy of the label
func (l Label) Clone() Label {
	out := l
	out.HighLevelBehavior = slices.Clone(l.HighLevelBehavior)
	out.BehavioralParams = slices.Clone(l.BehavioralParams)
	return out
}

// WithoutNotes returns a copy of the label with special notes cleared
func (l Label) WithoutNotes() Label {
	out := l.Clone()
	out.SpecialNotes = ""
	return out
}

// IsEmpty reports whether no category carries a value
func (l Label) IsEmpty() bool {
	return l.Posture == "" && len(l.HighLevelBehavior) == 0 && l.PAType == "" &&
		len(l.BehavioralParams) == 0 && l.ExperimentalSituation == "" && l.SpecialNotes == ""
}

// SameClassification compares posture, the sorted high-level-behavior set and
// PA type. Behavioral parameters, situation and notes are not compared.
func (l Label) SameClassification(other Label) bool {
	if l.Posture != other.Posture || l.PAType != other.PAType {
		return false
	}
	a := slices.Clone(l.HighLevelBehavior)
	b := slices.Clone(other.HighLevelBehavior)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// Values returns the selected values of a category, single-valued categories
// yielding at most one element.
func (l Label) Values(category string) []string {
	single := func(v string) []string {
		if v == "" {
			return nil
		}
		return []string{v}
	}
	switch category {
	case CategoryPosture:
		return single(l.Posture)
	case CategoryHighLevelBehavior:
		return slices.Clone(l.HighLevelBehavior)
	case CategoryPAType:
		return single(l.PAType)
	case CategoryBehavioralParams:
		return slices.Clone(l.BehavioralParams)
	case CategoryExperimentalSituation:
		return single(l.ExperimentalSituation)
	case CategorySpecialNotes:
		return single(l.SpecialNotes)
	}
	return nil
}

// LabeledValues returns the values of a category with empty entries and
// "_Unlabeled" sentinels removed.
func (l Label) LabeledValues(category string) []string {
	var out []string
	for _, v := range l.Values(category) {
		if v == "" || strings.HasSuffix(v, UnlabeledSuffix) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// CategoryList converts the label to the legacy ordered category/value list
func (l Label) CategoryList() []CategoryValue {
	list := func(v []string) []string {
		if v == nil {
			return []string{}
		}
		return v
	}
	return []CategoryValue{
		{Category: CategoryPosture, SelectedValue: l.Posture},
		{Category: CategoryHighLevelBehavior, SelectedValue: list(l.HighLevelBehavior)},
		{Category: CategoryPAType, SelectedValue: l.PAType},
		{Category: CategoryBehavioralParams, SelectedValue: list(l.BehavioralParams)},
		{Category: CategoryExperimentalSituation, SelectedValue: l.ExperimentalSituation},
		{Category: CategorySpecialNotes, SelectedValue: l.SpecialNotes},
	}
}

// EncodeBody renders the label as the JSON string stored in comments[0].body
func (l Label) EncodeBody() (string, error) {
	data, err := json.Marshal(l.CategoryList())
	if err != nil {
		return "", fmt.Errorf("encoding label body: %w", err)
	}
	return string(data), nil
}

// DecodeLabelBody parses a comments[0].body string back into a Label.
// Unknown categories are ignored; missing categories stay empty.
func DecodeLabelBody(body string) (Label, error) {
	var items []struct {
		Category      string          `json:"category"`
		SelectedValue json.RawMessage `json:"selectedValue"`
	}
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return Label{}, fmt.Errorf("decoding label body: %w", err)
	}

	var label Label
	for _, item := range items {
		values, err := decodeSelected(item.SelectedValue)
		if err != nil {
			return Label{}, fmt.Errorf("decoding %q value: %w", item.Category, err)
		}
		first := ""
		if len(values) > 0 {
			first = values[0]
		}
		switch item.Category {
		case CategoryPosture:
			label.Posture = first
		case CategoryHighLevelBehavior:
			label.HighLevelBehavior = values
		case CategoryPAType:
			label.PAType = first
		case CategoryBehavioralParams:
			label.BehavioralParams = values
		case CategoryExperimentalSituation:
			label.ExperimentalSituation = first
		case CategorySpecialNotes:
			label.SpecialNotes = first
		}
	}
	return label, nil
}

// decodeSelected accepts a string, a list of strings or null
func decodeSelected(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		if one == "" {
			return nil, nil
		}
		return []string{one}, nil
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, err
	}
	return many, nil
}
