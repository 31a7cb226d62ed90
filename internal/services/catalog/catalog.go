// Package catalog holds the selectable values of every label category and
// the PA type compatibility rules.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/killallgit/labeler/internal/models"
)

//go:embed default.yaml
var defaultYAML []byte

// Unlabeled sentinels, one per selectable category
const (
	PostureUnlabeled               = "Posture_Unlabeled"
	HLBUnlabeled                   = "HLB_Unlabeled"
	PATypeUnlabeled                = "PA_Type_Unlabeled"
	BehavioralParamsUnlabeled      = "CP_Unlabeled"
	ExperimentalSituationUnlabeled = "ES_Unlabeled"
)

// Catalog lists the allowed values per category and which postures and
// high-level behaviors each PA type admits. A PA type missing from a
// mapping admits everything.
type Catalog struct {
	Postures               []string            `yaml:"postures" json:"postures"`
	HighLevelBehaviors     []string            `yaml:"high_level_behaviors" json:"high_level_behaviors"`
	PATypes                []string            `yaml:"pa_types" json:"pa_types"`
	BehavioralParams       []string            `yaml:"behavioral_parameters" json:"behavioral_parameters"`
	ExperimentalSituations []string            `yaml:"experimental_situations" json:"experimental_situations"`
	PAToPosture            map[string][]string `yaml:"pa_to_posture" json:"pa_to_posture"`
	PAToHLB                map[string]string   `yaml:"pa_to_hlb" json:"pa_to_hlb"`
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return &c, nil
}

// Validate checks that every list is populated and that the mappings only
// reference listed values
func (c *Catalog) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Postures, validation.Required),
		validation.Field(&c.HighLevelBehaviors, validation.Required),
		validation.Field(&c.PATypes, validation.Required),
		validation.Field(&c.PAToPosture, validation.By(c.checkPostureMapping)),
		validation.Field(&c.PAToHLB, validation.By(c.checkHLBMapping)),
	)
}

func (c *Catalog) checkPostureMapping(any) error {
	for pa, postures := range c.PAToPosture {
		if !slices.Contains(c.PATypes, pa) {
			return fmt.Errorf("unknown PA type %q", pa)
		}
		for _, p := range postures {
			if !slices.Contains(c.Postures, p) {
				return fmt.Errorf("PA type %q maps to unknown posture %q", pa, p)
			}
		}
	}
	return nil
}

func (c *Catalog) checkHLBMapping(any) error {
	for pa, hlb := range c.PAToHLB {
		if !slices.Contains(c.PATypes, pa) {
			return fmt.Errorf("unknown PA type %q", pa)
		}
		if !slices.Contains(c.HighLevelBehaviors, hlb) {
			return fmt.Errorf("PA type %q maps to unknown high level behavior %q", pa, hlb)
		}
	}
	return nil
}

// Options returns the selectable values of a category, the unlabeled
// sentinel first. Special notes are free text and have no options.
func (c *Catalog) Options(category string) []string {
	with := func(sentinel string, values []string) []string {
		return append([]string{sentinel}, values...)
	}
	switch category {
	case models.CategoryPosture:
		return with(PostureUnlabeled, c.Postures)
	case models.CategoryHighLevelBehavior:
		return with(HLBUnlabeled, c.HighLevelBehaviors)
	case models.CategoryPAType:
		return with(PATypeUnlabeled, c.PATypes)
	case models.CategoryBehavioralParams:
		return with(BehavioralParamsUnlabeled, c.BehavioralParams)
	case models.CategoryExperimentalSituation:
		return with(ExperimentalSituationUnlabeled, c.ExperimentalSituations)
	}
	return nil
}

// ValidateLabel reports every label value the catalog does not list
func (c *Catalog) ValidateLabel(l models.Label) error {
	var unknown []string
	for _, category := range models.Categories {
		options := c.Options(category)
		if options == nil {
			continue
		}
		for _, v := range l.Values(category) {
			if !slices.Contains(options, v) {
				unknown = append(unknown, fmt.Sprintf("%s=%q", category, v))
			}
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownValue, strings.Join(unknown, ", "))
	}
	return nil
}
