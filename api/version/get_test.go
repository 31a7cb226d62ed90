package version

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/labeler/api/types"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		deps            *types.Dependencies
		expectedVersion string
	}{
		{"reports build version", &types.Dependencies{Version: "1.2.0"}, "1.2.0"},
		{"defaults to dev", &types.Dependencies{}, "dev"},
		{"nil dependencies", nil, "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			RegisterRoutes(router, tt.deps)

			for _, path := range []string{"/", "/version"} {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				assert.Equal(t, http.StatusOK, w.Code)

				var response map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, Name, response["name"])
				assert.Equal(t, tt.expectedVersion, response["version"])
				assert.Equal(t, "running", response["status"])
			}
		})
	}
}
