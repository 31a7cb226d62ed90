package session

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler/api/types"
	"github.com/killallgit/labeler/internal/services/export"
	"github.com/killallgit/labeler/pkg/config"
	apperrors "github.com/killallgit/labeler/pkg/errors"
)

// Export writes the label archive for the session to the configured sink
// @Summary      Export annotations
// @Description  Write the label archive to the configured local or S3 sink.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body types.ExportRequest false "Archive name"
// @Success      200 {object} map[string]any "Export location"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      500 {object} types.ErrorResponse "Export failed"
// @Failure      502 {object} types.ErrorResponse "S3 upload failed"
// @Router       /api/v1/session/export [post]
func (h *Handler) Export() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ExportRequest
		if !types.BindOptionalJSON(c, &req) {
			return
		}
		if h.deps.Exporter == nil || h.deps.Sink == nil {
			types.SendInternalError(c, "Export is not configured")
			return
		}

		state := h.deps.Session.State()
		name := req.Name
		if name == "" {
			name = export.ArchiveName(state.VideoPath)
		}

		res, err := h.deps.Exporter.Export(c.Request.Context(), export.Input{
			VideoPath:   state.VideoPath,
			VideoHash:   state.VideoHash,
			Annotations: state.Annotations,
		}, h.deps.Sink, name)
		if err != nil {
			if h.deps.Sink.Name() == config.SinkS3 {
				types.SendAppError(c, apperrors.ExternalServiceError(config.SinkS3, err))
				return
			}
			types.SendAppError(c, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to export annotations"))
			return
		}

		if h.deps.Videos != nil && state.VideoPath != "" {
			if err := h.deps.Videos.RecordExport(c.Request.Context(), state.VideoPath, res.Location); err != nil {
				log.Printf("[WARN] Failed to record export of %s: %v", state.VideoPath, err)
			}
		}
		types.SendSuccess(c, gin.H{"status": types.StatusOK, "export": res})
	}
}
