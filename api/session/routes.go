package session

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler/api/types"
)

// RegisterRoutes registers the session endpoints on the given group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) *Handler {
	h := NewHandler(deps)

	router.GET("", h.GetState())
	router.POST("/open", h.Open())
	router.PUT("/position", h.PutPosition())
	router.GET("/colors", h.GetColors())

	router.POST("/toggle", h.Toggle())
	router.POST("/edit", h.Edit())
	router.GET("/defaults", h.GetDefaults())
	router.POST("/defaults", h.EditDefaults())
	router.POST("/cancel", h.Cancel())
	router.POST("/delete", h.Delete())
	router.POST("/split", h.Split())
	router.POST("/merge/previous", h.MergePrevious())
	router.POST("/merge/next", h.MergeNext())
	router.POST("/navigate/previous", h.NavigatePrevious())
	router.POST("/navigate/next", h.NavigateNext())

	router.POST("/load", h.Load())
	router.POST("/export", h.Export())
	return h
}
