package session

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler/api/types"
	"github.com/killallgit/labeler/internal/models"
	"github.com/killallgit/labeler/internal/services/annotations"
	"github.com/killallgit/labeler/internal/services/autosave"
	apperrors "github.com/killallgit/labeler/pkg/errors"
)

// Load replaces the session annotations with a labels document. A document
// made for a different video needs confirming.
// @Summary      Load annotations
// @Description  Replace the session annotations with a labels.json document from a path or inline.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body types.LoadRequest true "Labels document"
// @Success      200 {object} types.SessionResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      409 {object} types.PromptResponse "Confirmation or label needed"
// @Failure      409 {object} types.ErrorResponse "Prompt declined"
// @Failure      422 {object} types.ErrorResponse "Operation rejected"
// @Router       /api/v1/session/load [post]
func (h *Handler) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.LoadRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		var (
			snap *models.Snapshot
			err  error
		)
		switch {
		case len(req.Document) > 0:
			snap, err = autosave.ParseSnapshot(req.Document)
		case req.Path != "":
			snap, err = autosave.ReadSnapshotFile(req.Path)
		default:
			types.SendAppError(c, apperrors.MissingFieldError("path"))
			return
		}
		if err != nil {
			types.SendAppError(c, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "Failed to load annotations"))
			return
		}

		ui := &requestUI{confirm: req.Confirm}
		session := h.deps.Session
		items, err := autosave.LoadSnapshot(snap, session.VideoPath(), session.VideoHash(), ui)
		if err != nil {
			if errors.Is(err, annotations.ErrDeclined) {
				sendOperationError(c, err, ui)
				return
			}
			types.SendAppError(c, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "Failed to load annotations"))
			return
		}

		player := newRequestPlayer(h.playback, nil)
		if err := h.newEngine(player, ui).Replace(items); err != nil {
			sendOperationError(c, err, ui)
			return
		}
		types.SendSuccess(c, h.sessionResponse(player, ui))
	}
}
