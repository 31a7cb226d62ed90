package session

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler/api/types"
	"github.com/killallgit/labeler/internal/metrics"
	"github.com/killallgit/labeler/internal/models"
	"github.com/killallgit/labeler/internal/services/autosave"
	"github.com/killallgit/labeler/internal/services/videos"
	apperrors "github.com/killallgit/labeler/pkg/errors"
)

// answer is a fixed reply to the autosave recovery question
type answer bool

func (a answer) Confirm(string, string) bool {
	return bool(a)
}

// Open attaches a video to the session. When an autosave exists for it the
// client is asked whether to restore it; the restore flag answers.
// @Summary      Open a video
// @Description  Attach a video file to the session. When an autosave exists for it the response is a
// @Description  recovery prompt until the request carries restore.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request body types.OpenRequest true "Video to open"
// @Success      200 {object} types.OpenResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      404 {object} types.ErrorResponse "Video not found"
// @Failure      409 {object} types.PromptResponse "Autosave recovery prompt"
// @Router       /api/v1/session/open [post]
func (h *Handler) Open() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.OpenRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		path, err := filepath.Abs(req.Path)
		if err != nil {
			types.SendAppError(c, apperrors.ValidationError("path", err.Error()))
			return
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			types.SendAppError(c, apperrors.NotFound("video", req.Path))
			return
		}
		hash := autosave.HashSize(info.Size())

		var items []*models.Annotation
		restored := false
		if m := h.deps.Autosave; m != nil {
			if snap, matches := m.Check(path, hash); snap != nil {
				if req.Restore == nil {
					types.SendPrompt(c, types.PromptResponse{Prompt: &types.Prompt{
						Title:   autosave.RecoveryTitle,
						Message: autosave.RecoveryPrompt(hash, matches),
					}})
					return
				}
				items, restored = m.Recover(path, hash, answer(*req.Restore))
			}
		}

		durationMs := h.probeDuration(c.Request.Context(), path)
		h.deps.Session.Reset(path, hash, items)
		h.playback.Reset(durationMs)
		metrics.SetAnnotationCount(len(items))
		log.Printf("[INFO] Opened video %s (hash %d, %d annotation(s))", path, hash, len(items))

		if h.deps.Videos != nil {
			_, err := h.deps.Videos.RecordOpen(c.Request.Context(), videos.FileInfo{
				Path:       path,
				Hash:       hash,
				Size:       info.Size(),
				Duration:   float64(durationMs) / 1000.0,
				ModifiedAt: info.ModTime(),
			})
			if err != nil {
				log.Printf("[WARN] Failed to record video %s: %v", path, err)
			} else if restored {
				if err := h.deps.Videos.RecordAnnotationCount(c.Request.Context(), path, len(items)); err != nil {
					log.Printf("[WARN] Failed to update annotation count for %s: %v", path, err)
				}
			}
		}
		if h.deps.Watcher != nil {
			if err := h.deps.Watcher.Track(path, hash); err != nil {
				log.Printf("[WARN] Not watching %s: %v", path, err)
			}
		}

		types.SendSuccess(c, types.OpenResponse{
			SessionResponse: types.SessionResponse{
				BaseResponse: types.BaseResponse{Status: types.StatusOK},
				Session:      h.state(),
				Changed:      true,
			},
			Restored: restored,
		})
	}
}

// probeDuration reads the media duration, 0 when it cannot be determined
func (h *Handler) probeDuration(ctx context.Context, path string) int64 {
	if h.deps.Probe == nil {
		return 0
	}
	meta, err := h.deps.Probe.GetMetadata(ctx, path)
	if err != nil {
		log.Printf("[WARN] Could not probe %s: %v", path, err)
		return 0
	}
	return meta.DurationMs()
}
