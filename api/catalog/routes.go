package catalog

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler/api/types"
)

// RegisterRoutes registers catalog routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", Get(deps))
	router.POST("/check", PostCheck(deps))
}
