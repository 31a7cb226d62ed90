package session

import (
	"github.com/killallgit/labeler/api/types"
	"github.com/killallgit/labeler/internal/models"
	"github.com/killallgit/labeler/internal/services/catalog"
)

// requestUI implements annotations.UI for a single request. Questions are
// answered from the request body; a question the body does not answer is
// recorded so the handler can hand it back to the client.
type requestUI struct {
	confirm       *bool
	label         *models.Label
	catalog       *catalog.Catalog
	disableAlerts bool

	pending     *types.Prompt
	labelPrompt *types.LabelPrompt
	warnings    []types.Prompt
	changed     bool
}

func (u *requestUI) Confirm(title, message string) bool {
	if u.confirm != nil {
		return *u.confirm
	}
	if u.pending == nil {
		u.pending = &types.Prompt{Title: title, Message: message}
	}
	return false
}

func (u *requestUI) Warn(title, message string) {
	u.warnings = append(u.warnings, types.Prompt{Title: title, Message: message})
}

// PromptLabelEdit returns the label sent with the request. Without one the
// form is handed back to the client. A label that breaks the catalog's PA
// type mapping needs confirming unless alerts are disabled.
func (u *requestUI) PromptLabelEdit(initial models.Label, isNew bool) (*models.Label, bool) {
	if u.label == nil {
		u.labelPrompt = &types.LabelPrompt{Initial: initial, IsNew: isNew}
		return nil, false
	}
	if u.catalog != nil && !u.disableAlerts {
		if inc := u.catalog.Check(*u.label); inc != nil {
			if !u.Confirm(catalog.ConfirmSaveTitle, inc.Message()) {
				return nil, false
			}
		}
	}
	label := u.label.Clone()
	return &label, true
}

func (u *requestUI) NotifyTimelineChanged() {
	u.changed = true
}
