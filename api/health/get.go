package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/labeler/api/types"
)

// Get handles health check requests. An unreachable registry database makes
// the service unhealthy; a missing one does not.
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := types.StatusOK
		code := http.StatusOK

		db := getDatabaseStatus(deps)
		if db["status"] == "unhealthy" {
			status = types.StatusError
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, types.HealthResponse{
			BaseResponse: types.BaseResponse{Status: status},
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
			Services: map[string]any{
				"database": db,
				"session":  getSessionStatus(deps),
				"autosave": getAutosaveStatus(deps),
			},
		})
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return gin.H{"status": "not configured"}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}

	return gin.H{"status": "healthy"}
}

func getSessionStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.Session == nil {
		return gin.H{"status": "not configured"}
	}
	state := deps.Session.State()
	return gin.H{
		"status":      "healthy",
		"video":       state.VideoPath,
		"annotations": len(state.Annotations),
		"recording":   state.Current != nil,
	}
}

func getAutosaveStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.Autosave == nil {
		return gin.H{"status": "disabled"}
	}
	return gin.H{"status": "enabled", "dir": deps.Autosave.Dir()}
}
