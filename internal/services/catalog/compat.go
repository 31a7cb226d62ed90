package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/killallgit/labeler/internal/models"
)

// ConfirmSaveTitle is the title of the incompatible-selection prompt
const ConfirmSaveTitle = "Confirm Save"

// Incompatibility lists the posture and high-level behavior values that the
// selected PA type does not admit
type Incompatibility struct {
	PAType   string   `json:"pa_type"`
	Postures []string `json:"postures,omitempty"`
	HLBs     []string `json:"hlbs,omitempty"`
}

// Message renders the save confirmation question
func (i *Incompatibility) Message() string {
	var lines []string
	if len(i.Postures) > 0 {
		lines = append(lines, fmt.Sprintf("- Posture '%s' is incompatible.", i.Postures[0]))
	}
	if len(i.HLBs) > 0 {
		lines = append(lines, fmt.Sprintf("- HLB(s) %s are incompatible.", strings.Join(i.HLBs, ", ")))
	}
	return fmt.Sprintf("There are incompatible selections for PA Type '%s':\n\n%s\n\nDo you want to save anyway?",
		i.PAType, strings.Join(lines, "\n"))
}

func isUnlabeled(v, sentinel string) bool {
	return v == "" || v == sentinel
}

// Check compares the label's posture and high-level behaviors against its PA
// type. It returns nil when the label is compatible or has no PA type.
func (c *Catalog) Check(l models.Label) *Incompatibility {
	if isUnlabeled(l.PAType, PATypeUnlabeled) {
		return nil
	}
	out := &Incompatibility{PAType: l.PAType}

	if allowed, ok := c.PAToPosture[l.PAType]; ok {
		if !isUnlabeled(l.Posture, PostureUnlabeled) && !slices.Contains(allowed, l.Posture) {
			out.Postures = append(out.Postures, l.Posture)
		}
	}
	if allowed, ok := c.PAToHLB[l.PAType]; ok {
		for _, hlb := range l.HighLevelBehavior {
			if hlb != allowed && !isUnlabeled(hlb, HLBUnlabeled) {
				out.HLBs = append(out.HLBs, hlb)
			}
		}
	}

	if len(out.Postures) == 0 && len(out.HLBs) == 0 {
		return nil
	}
	return out
}
