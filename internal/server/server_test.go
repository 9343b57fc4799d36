package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showcase-pro/pptx-demo-backend/pkg/config"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "server-test")
	if err != nil {
		panic(err)
	}
	if err := config.Init(filepath.Join(dir, "missing.yaml")); err != nil {
		panic(err)
	}
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func setupServer(t *testing.T) *Server {
	t.Helper()
	s := New()
	require.NoError(t, s.Setup())
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

func TestRoutesAreMounted(t *testing.T) {
	s := setupServer(t)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(`{"slides":[{"title":"Hi"}]}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = s.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimitOnAPIGroup(t *testing.T) {
	config.Set("rate_limit.enabled", true)
	config.Set("rate_limit.max_requests", 1)
	t.Cleanup(func() { config.Set("rate_limit.enabled", false) })

	s := setupServer(t)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// 根路径健康检查不受限流影响
	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSetupRejectsUnknownEngine(t *testing.T) {
	config.Set("extract.engine", "quantum")
	t.Cleanup(func() { config.Set("extract.engine", "static") })

	assert.Error(t, New().Setup())
}
