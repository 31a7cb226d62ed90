package version

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler/api/types"
)

// Name is reported by the version endpoint
const Name = "Labeler"

// Get handles version requests
func Get(deps *types.Dependencies) gin.HandlerFunc {
	version := "dev"
	if deps != nil && deps.Version != "" {
		version = deps.Version
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        Name,
			"version":     version,
			"description": "Video timeline annotation service",
			"status":      "running",
		})
	}
}
