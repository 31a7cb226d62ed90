// Package session exposes the annotation session over HTTP. Every operation
// builds an engine around the shared session with collaborators scoped to
// the request.
package session

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler/api/types"
	"github.com/killallgit/labeler/internal/services/annotations"
	apperrors "github.com/killallgit/labeler/pkg/errors"
)

// Handler serves the session endpoints
type Handler struct {
	deps     *types.Dependencies
	playback *Playback
}

// NewHandler creates a session handler. deps.Session must be set.
func NewHandler(deps *types.Dependencies) *Handler {
	return &Handler{deps: deps, playback: &Playback{}}
}

func (h *Handler) newUI(req types.OperationRequest) *requestUI {
	return &requestUI{
		confirm:       req.Confirm,
		label:         req.Label,
		catalog:       h.deps.Catalog,
		disableAlerts: h.deps.DisableAlerts,
	}
}

func (h *Handler) newEngine(player annotations.Player, ui annotations.UI) *annotations.Engine {
	return annotations.NewEngine(h.deps.Session, player, ui, annotations.WithHooks(h.deps.Hooks...))
}

// operation wraps an engine call in the request/response protocol shared by
// the mutating endpoints
func (h *Handler) operation(requireVideo bool, op func(e *annotations.Engine) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.OperationRequest
		if !types.BindOptionalJSON(c, &req) {
			return
		}
		if !validPosition(c, req.PositionMs) {
			return
		}
		if requireVideo && h.deps.Session.VideoPath() == "" {
			types.SendAppError(c, apperrors.NoVideo())
			return
		}
		if req.Label != nil && h.deps.Catalog != nil {
			if err := h.deps.Catalog.ValidateLabel(*req.Label); err != nil {
				types.SendAppError(c, apperrors.ValidationError("label", err.Error()))
				return
			}
		}

		player := newRequestPlayer(h.playback, req.PositionMs)
		ui := h.newUI(req)
		if err := op(h.newEngine(player, ui)); err != nil {
			sendOperationError(c, err, ui)
			return
		}
		types.SendSuccess(c, h.sessionResponse(player, ui))
	}
}

// validPosition rejects playhead positions before the start of the media
func validPosition(c *gin.Context, positionMs *int64) bool {
	if positionMs != nil && *positionMs < 0 {
		types.SendAppError(c, apperrors.ValidationError("position_ms", "must not be negative"))
		return false
	}
	return true
}

// sendOperationError turns an engine error into the matching response. A
// decline caused by an unanswered question becomes a prompt.
func sendOperationError(c *gin.Context, err error, ui *requestUI) {
	var ue *annotations.UserError
	switch {
	case errors.Is(err, annotations.ErrDeclined) && ui.pending != nil:
		types.SendPrompt(c, types.PromptResponse{Prompt: ui.pending})
	case errors.Is(err, annotations.ErrDeclined) && ui.labelPrompt != nil:
		types.SendPrompt(c, types.PromptResponse{Label: ui.labelPrompt})
	case errors.Is(err, annotations.ErrDeclined):
		types.SendAppError(c, apperrors.New(apperrors.ErrCodeDeclined, "operation declined"))
	case errors.As(err, &ue):
		types.SendAppError(c, apperrors.Rejected(ue.Title, ue.Message, ue.Err))
	default:
		types.SendAppError(c, err)
	}
}

func (h *Handler) state() types.SessionState {
	s := h.deps.Session.State()
	colors := make(map[string]string)
	for _, a := range s.Annotations {
		posture := a.Classification().Posture
		if _, ok := colors[posture]; !ok && posture != "" {
			colors[posture] = h.deps.Session.PostureColor(posture)
		}
	}
	pos, dur := h.playback.Get()
	return types.NewSessionState(s, colors, pos, dur)
}

func (h *Handler) sessionResponse(player *requestPlayer, ui *requestUI) types.SessionResponse {
	return types.SessionResponse{
		BaseResponse: types.BaseResponse{Status: types.StatusOK},
		Session:      h.state(),
		Warnings:     ui.warnings,
		SeekMs:       player.seekMs,
		Changed:      ui.changed,
	}
}
