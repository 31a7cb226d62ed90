package videos

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler/api/types"
	apperrors "github.com/killallgit/labeler/pkg/errors"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// GetAll lists registered videos, most recently opened first
// @Summary      List videos
// @Description  List videos that have been opened for labeling with their annotation count
// @Description  and latest export.
// @Tags         videos
// @Produce      json
// @Param        limit query int false "Maximum number of videos (1-500)" default(50)
// @Success      200 {object} map[string]any "Video list"
// @Failure      400 {object} types.ErrorResponse "Invalid limit"
// @Router       /api/v1/videos [get]
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, ok := types.QueryInt(c, "limit", defaultLimit)
		if !ok {
			return
		}
		if limit < 1 || limit > maxLimit {
			types.SendBadRequest(c, "limit must be between 1 and 500")
			return
		}

		list, err := deps.Videos.ListVideos(c.Request.Context(), limit)
		if err != nil {
			types.SendAppError(c, apperrors.DatabaseError("list videos", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": types.StatusOK,
			"videos": list,
			"count":  len(list),
		})
	}
}
