package videos

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler/api/types"
	videosvc "github.com/killallgit/labeler/internal/services/videos"
	apperrors "github.com/killallgit/labeler/pkg/errors"
)

// Get returns the registry entry of one video
// @Summary      Get a video
// @Tags         videos
// @Produce      json
// @Param        path query string true "Absolute video path"
// @Success      200 {object} models.Video
// @Failure      404 {object} types.ErrorResponse "Video not registered"
// @Router       /api/v1/videos/lookup [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Query("path")
		if path == "" {
			types.SendAppError(c, apperrors.MissingFieldError("path"))
			return
		}

		video, err := deps.Videos.GetVideo(c.Request.Context(), path)
		if err != nil {
			if errors.Is(err, videosvc.ErrVideoNotFound) {
				types.SendAppError(c, apperrors.NotFound("video", path))
				return
			}
			types.SendAppError(c, apperrors.DatabaseError("get video", err))
			return
		}
		c.JSON(http.StatusOK, video)
	}
}

// Delete removes a video from the registry. Its autosave is left alone.
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Query("path")
		if path == "" {
			types.SendAppError(c, apperrors.MissingFieldError("path"))
			return
		}

		if err := deps.Videos.ForgetVideo(c.Request.Context(), path); err != nil {
			if errors.Is(err, videosvc.ErrVideoNotFound) {
				types.SendAppError(c, apperrors.NotFound("video", path))
				return
			}
			types.SendAppError(c, apperrors.DatabaseError("delete video", err))
			return
		}
		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Video removed"})
	}
}
