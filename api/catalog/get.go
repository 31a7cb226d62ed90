package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler/api/types"
	"github.com/killallgit/labeler/internal/models"
)

// Get returns the label catalog
// @Summary      Get the label catalog
// @Description  Get the selectable values of every label category, each list starting with
// @Description  its unlabeled sentinel, plus the PA type compatibility mappings.
// @Tags         catalog
// @Produce      json
// @Success      200 {object} map[string]any "Catalog options and mappings"
// @Failure      500 {object} types.ErrorResponse "Catalog not loaded"
// @Router       /api/v1/catalog [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.Catalog == nil {
			types.SendInternalError(c, "Catalog not available")
			return
		}

		options := make(map[string][]string, len(models.Categories))
		for _, category := range models.Categories {
			if values := deps.Catalog.Options(category); values != nil {
				options[category] = values
			}
		}

		// The catalog only changes on restart
		c.Header("Cache-Control", "public, max-age=3600")
		c.JSON(http.StatusOK, gin.H{
			"status":         types.StatusOK,
			"options":        options,
			"pa_to_posture":  deps.Catalog.PAToPosture,
			"pa_to_hlb":      deps.Catalog.PAToHLB,
			"alerts_enabled": !deps.DisableAlerts,
		})
	}
}
