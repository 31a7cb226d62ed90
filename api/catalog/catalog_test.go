package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/labeler/api/types"
	"github.com/killallgit/labeler/internal/models"
	labelcatalog "github.com/killallgit/labeler/internal/services/catalog"
)

func setupRouter(deps *types.Dependencies) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1/catalog"), deps)
	return router
}

func TestGet(t *testing.T) {
	t.Run("returns options", func(t *testing.T) {
		router := setupRouter(&types.Dependencies{Catalog: labelcatalog.Default()})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))

		var resp struct {
			Options       map[string][]string `json:"options"`
			AlertsEnabled bool                `json:"alerts_enabled"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Options[models.CategoryPosture])
		assert.Equal(t, labelcatalog.PostureUnlabeled, resp.Options[models.CategoryPosture][0])
		assert.NotContains(t, resp.Options, models.CategorySpecialNotes)
		assert.True(t, resp.AlertsEnabled)
	})

	t.Run("catalog missing", func(t *testing.T) {
		router := setupRouter(&types.Dependencies{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestPostCheck(t *testing.T) {
	router := setupRouter(&types.Dependencies{Catalog: labelcatalog.Default()})

	tests := []struct {
		name           string
		label          models.Label
		expectedStatus int
		compatible     bool
	}{
		{"compatible", models.Label{Posture: "Lying", PAType: "Sleep"}, http.StatusOK, true},
		{"incompatible posture", models.Label{Posture: "Standing", PAType: "Sleep"}, http.StatusOK, false},
		{"no pa type", models.Label{Posture: "Standing"}, http.StatusOK, true},
		{"unknown value", models.Label{Posture: "Hovering"}, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(types.LabelRequest{Label: tt.label})
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/check", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.compatible, resp["compatible"])
			if !tt.compatible {
				assert.Contains(t, resp["message"], "Do you want to save anyway?")
			}
		})
	}
}
