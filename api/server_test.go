package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/labeler/api/types"
	"github.com/killallgit/labeler/internal/database"
	"github.com/killallgit/labeler/internal/services/annotations"
	"github.com/killallgit/labeler/internal/services/videos"
	"github.com/killallgit/labeler/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:       config.ServerConfig{Host: "127.0.0.1", Port: 8080},
		RateLimiting: config.RateLimitConfig{Enabled: true, RequestsPerSecond: 50, Burst: 100},
		Security:     config.SecurityConfig{EnableCORS: true, CORSOrigins: []string{"*"}},
		Monitoring:   config.MonitoringConfig{Enabled: true, MetricsPath: "/metrics", HealthPath: "/health"},
	}
}

func newTestServer(t *testing.T, cfg *config.Config, deps *types.Dependencies) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := NewServer(cfg)
	srv.SetDependencies(deps)
	require.NoError(t, srv.Initialize())
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return srv
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestServer_Routes(t *testing.T) {
	srv := newTestServer(t, testConfig(), &types.Dependencies{Session: annotations.NewSession()})

	tests := []struct {
		path           string
		expectedStatus int
		contains       string
	}{
		{"/health", http.StatusOK, `"status":"ok"`},
		{"/version", http.StatusOK, `"name":"Labeler"`},
		{"/metrics", http.StatusOK, "go_goroutines"},
		{"/api/v1/session", http.StatusOK, `"annotations":[]`},
		{"/api/v1/catalog", http.StatusOK, "Posture_Unlabeled"},
		{"/api/v1/videos", http.StatusNotFound, "not found"},
		{"/docs", http.StatusMovedPermanently, "/docs/index.html"},
		{"/docs/doc.json", http.StatusOK, "/api/v1/session/toggle"},
		{"/nope", http.StatusNotFound, `"path":"/nope"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(srv, tt.path)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestServer_RegistryRoutesWithDatabase(t *testing.T) {
	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	srv := newTestServer(t, testConfig(), &types.Dependencies{
		DB:      db,
		Session: annotations.NewSession(),
		Videos:  videos.NewService(videos.NewRepository(db.DB)),
	})

	w := get(srv, "/api/v1/videos")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

func TestServer_OptionalFeatures(t *testing.T) {
	cfg := testConfig()
	cfg.Monitoring.Enabled = false
	cfg.Security.EnableCORS = false
	cfg.Monitoring.HealthPath = "/healthz"
	srv := newTestServer(t, cfg, &types.Dependencies{Session: annotations.NewSession()})

	assert.Equal(t, http.StatusNotFound, get(srv, "/metrics").Code)
	assert.Equal(t, http.StatusOK, get(srv, "/healthz").Code)
	assert.Empty(t, get(srv, "/version").Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_InitializeRequiresSession(t *testing.T) {
	srv := NewServer(testConfig())
	assert.Error(t, srv.Initialize())
	assert.Equal(t, "127.0.0.1:8080", srv.Addr())
}

func TestJSONLogFormatter(t *testing.T) {
	line := jsonLogFormatter(gin.LogFormatterParams{Method: http.MethodPost, Path: "/api/v1/session/toggle", StatusCode: 200})
	assert.Contains(t, line, `"method":"POST"`)
	assert.Contains(t, line, `"status":200`)
	assert.Contains(t, line, "\n")
}
