package health

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler/api/types"
)

// RegisterRoutes registers health check routes
func RegisterRoutes(engine *gin.Engine, path string, deps *types.Dependencies) {
	if path == "" {
		path = "/health"
	}
	engine.GET(path, Get(deps))
}
