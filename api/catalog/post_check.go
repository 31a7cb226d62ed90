package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler/api/types"
	apperrors "github.com/killallgit/labeler/pkg/errors"
)

// PostCheck validates a label against the catalog and reports PA type
// incompatibilities
// @Summary      Check a label
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body types.LabelRequest true "Label to check"
// @Success      200 {object} map[string]any "Compatibility result"
// @Failure      400 {object} types.ErrorResponse "Unknown label value"
// @Router       /api/v1/catalog/check [post]
func PostCheck(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.Catalog == nil {
			types.SendInternalError(c, "Catalog not available")
			return
		}
		var req types.LabelRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		if err := deps.Catalog.ValidateLabel(req.Label); err != nil {
			types.SendAppError(c, apperrors.ValidationError("label", err.Error()))
			return
		}

		resp := gin.H{"status": types.StatusOK, "compatible": true}
		if inc := deps.Catalog.Check(req.Label); inc != nil {
			resp["compatible"] = false
			resp["incompatibility"] = inc
			resp["message"] = inc.Message()
		}
		c.JSON(http.StatusOK, resp)
	}
}
