package session

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler/api/types"
	"github.com/killallgit/labeler/internal/services/annotations"
)

// GetState returns the current session
// @Summary      Get the session
// @Tags         session
// @Produce      json
// @Success      200 {object} types.SessionResponse
// @Router       /api/v1/session [get]
func (h *Handler) GetState() gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendSuccess(c, types.SessionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Session:      h.state(),
		})
	}
}

// PutPosition records the client playhead
// @Summary      Report the playhead
// @Description  Record the client player position and, optionally, the media duration.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body types.PositionRequest true "Playback state"
// @Success      200 {object} map[string]any "Recorded playback state"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Router       /api/v1/session/position [put]
func (h *Handler) PutPosition() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.PositionRequest
		if !types.BindJSONOrError(c, &req) || !validPosition(c, &req.PositionMs) {
			return
		}
		h.playback.Set(req.PositionMs, req.DurationMs)
		pos, dur := h.playback.Get()
		types.SendSuccess(c, gin.H{"status": types.StatusOK, "position_ms": pos, "duration_ms": dur})
	}
}

// Toggle starts or finalizes an annotation at the playhead
// @Summary      Toggle an annotation
// @Description  Start a new annotation at the playhead, or finalize the one in progress.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body types.OperationRequest false "Playhead position and prompt answer"
// @Success      200 {object} types.SessionResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      412 {object} types.ErrorResponse "No video open"
// @Failure      409 {object} types.PromptResponse "Confirmation or label needed"
// @Failure      409 {object} types.ErrorResponse "Prompt declined"
// @Failure      422 {object} types.ErrorResponse "Operation rejected"
// @Router       /api/v1/session/toggle [post]
func (h *Handler) Toggle() gin.HandlerFunc {
	return h.operation(true, (*annotations.Engine).Toggle)
}

// Edit changes the label of the annotation under the playhead
// @Summary      Edit an annotation label
// @Description  Change the label of the annotation under the playhead.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body types.OperationRequest false "Playhead position and prompt answer"
// @Success      200 {object} types.SessionResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      412 {object} types.ErrorResponse "No video open"
// @Failure      409 {object} types.PromptResponse "Confirmation or label needed"
// @Failure      409 {object} types.ErrorResponse "Prompt declined"
// @Failure      422 {object} types.ErrorResponse "Operation rejected"
// @Router       /api/v1/session/edit [post]
func (h *Handler) Edit() gin.HandlerFunc {
	return h.operation(true, (*annotations.Engine).Edit)
}

// EditDefaults changes the label new annotations start with
// @Summary      Edit the default label
// @Description  Change the label new annotations start with.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body types.OperationRequest false "Playhead position and prompt answer"
// @Success      200 {object} types.SessionResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      412 {object} types.ErrorResponse "No video open"
// @Failure      409 {object} types.PromptResponse "Confirmation or label needed"
// @Failure      409 {object} types.ErrorResponse "Prompt declined"
// @Failure      422 {object} types.ErrorResponse "Operation rejected"
// @Router       /api/v1/session/defaults [post]
func (h *Handler) EditDefaults() gin.HandlerFunc {
	return h.operation(false, (*annotations.Engine).EditDefaults)
}

// Cancel discards the in-progress annotation
// @Summary      Cancel the annotation in progress
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body types.OperationRequest false "Playhead position and prompt answer"
// @Success      200 {object} types.SessionResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      412 {object} types.ErrorResponse "No video open"
// @Failure      422 {object} types.ErrorResponse "Operation rejected"
// @Router       /api/v1/session/cancel [post]
func (h *Handler) Cancel() gin.HandlerFunc {
	return h.operation(true, (*annotations.Engine).Cancel)
}

// Delete removes the annotation under the playhead
// @Summary      Delete an annotation
// @Description  Delete the annotation under the playhead after confirmation.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body types.OperationRequest false "Playhead position and prompt answer"
// @Success      200 {object} types.SessionResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      412 {object} types.ErrorResponse "No video open"
// @Failure      409 {object} types.PromptResponse "Confirmation or label needed"
// @Failure      409 {object} types.ErrorResponse "Prompt declined"
// @Failure      422 {object} types.ErrorResponse "Operation rejected"
// @Router       /api/v1/session/delete [post]
func (h *Handler) Delete() gin.HandlerFunc {
	return h.operation(true, (*annotations.Engine).Delete)
}

// Split cuts the annotation under the playhead in two
// @Summary      Split an annotation
// @Description  Cut the annotation under the playhead in two at the playhead.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body types.OperationRequest false "Playhead position and prompt answer"
// @Success      200 {object} types.SessionResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      412 {object} types.ErrorResponse "No video open"
// @Failure      409 {object} types.PromptResponse "Confirmation or label needed"
// @Failure      409 {object} types.ErrorResponse "Prompt declined"
// @Failure      422 {object} types.ErrorResponse "Operation rejected"
// @Router       /api/v1/session/split [post]
func (h *Handler) Split() gin.HandlerFunc {
	return h.operation(true, (*annotations.Engine).Split)
}

// MergePrevious joins the annotation under the playhead with the one before it
// @Summary      Merge with the previous annotation
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body types.OperationRequest false "Playhead position and prompt answer"
// @Success      200 {object} types.SessionResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      412 {object} types.ErrorResponse "No video open"
// @Failure      409 {object} types.PromptResponse "Confirmation or label needed"
// @Failure      409 {object} types.ErrorResponse "Prompt declined"
// @Failure      422 {object} types.ErrorResponse "Operation rejected"
// @Router       /api/v1/session/merge/previous [post]
func (h *Handler) MergePrevious() gin.HandlerFunc {
	return h.operation(true, (*annotations.Engine).MergeWithPrevious)
}

// MergeNext joins the annotation under the playhead with the one after it
// @Summary      Merge with the next annotation
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body types.OperationRequest false "Playhead position and prompt answer"
// @Success      200 {object} types.SessionResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      412 {object} types.ErrorResponse "No video open"
// @Failure      409 {object} types.PromptResponse "Confirmation or label needed"
// @Failure      409 {object} types.ErrorResponse "Prompt declined"
// @Failure      422 {object} types.ErrorResponse "Operation rejected"
// @Router       /api/v1/session/merge/next [post]
func (h *Handler) MergeNext() gin.HandlerFunc {
	return h.operation(true, (*annotations.Engine).MergeWithNext)
}

// NavigatePrevious moves the playhead to the previous annotation boundary
// @Summary      Jump to the previous boundary
// @Description  Move the playhead to the nearest annotation start or end in that direction.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body types.OperationRequest false "Playhead position and prompt answer"
// @Success      200 {object} types.NavigateResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Router       /api/v1/session/navigate/previous [post]
func (h *Handler) NavigatePrevious() gin.HandlerFunc {
	return h.navigate((*annotations.Engine).NavigatePrevious)
}

// NavigateNext moves the playhead to the next annotation boundary
// @Summary      Jump to the next boundary
// @Description  Move the playhead to the nearest annotation start or end in that direction.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body types.OperationRequest false "Playhead position and prompt answer"
// @Success      200 {object} types.NavigateResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Router       /api/v1/session/navigate/next [post]
func (h *Handler) NavigateNext() gin.HandlerFunc {
	return h.navigate((*annotations.Engine).NavigateNext)
}

func (h *Handler) navigate(nav func(e *annotations.Engine) (float64, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.OperationRequest
		if !types.BindOptionalJSON(c, &req) || !validPosition(c, req.PositionMs) {
			return
		}
		player := newRequestPlayer(h.playback, req.PositionMs)
		pos, moved := nav(h.newEngine(player, h.newUI(req)))
		types.SendSuccess(c, types.NavigateResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Position:     pos,
			Moved:        moved,
		})
	}
}

// GetColors returns the timeline color of every posture in the session
// @Summary      Get posture colors
// @Tags         session
// @Produce      json
// @Success      200 {object} map[string]any "Timeline color per posture"
// @Router       /api/v1/session/colors [get]
func (h *Handler) GetColors() gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendSuccess(c, gin.H{"status": types.StatusOK, "colors": h.state().Colors})
	}
}

// GetDefaults returns the label new annotations start with
// @Summary      Get the default label
// @Tags         session
// @Produce      json
// @Success      200 {object} map[string]any "Label new annotations start with"
// @Router       /api/v1/session/defaults [get]
func (h *Handler) GetDefaults() gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendSuccess(c, gin.H{"status": types.StatusOK, "label": h.deps.Session.LastUsedLabel()})
	}
}
