package videos

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler/api/types"
)

// RegisterRoutes registers video registry routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", GetAll(deps))
	router.GET("/lookup", Get(deps))
	router.DELETE("/lookup", Delete(deps))
}
