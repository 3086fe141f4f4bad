package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avrouter/internal/config"
	"github.com/vyrodovalexey/avrouter/internal/middleware"
	"github.com/vyrodovalexey/avrouter/internal/observability"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Listener.MetricsAddress = ""
	cfg.Routes = []config.RouteConfig{
		{
			Name:    "health",
			Exact:   "/health",
			Methods: []string{"GET"},
			Response: config.ResponseConfig{
				Status:      200,
				ContentType: "application/json",
				Body:        `{"status":"ok"}`,
			},
		},
		{
			Name:    "user",
			Pattern: "/api/users/{id}",
			Methods: []string{"GET"},
			Response: config.ResponseConfig{
				Status:      200,
				ContentType: "application/json",
				Body:        `{"user":"{id}"}`,
			},
		},
		{
			Name:    "user-post",
			Pattern: "/api/users/{id}/posts/{postId}",
			Methods: []string{"GET"},
			Response: config.ResponseConfig{
				Status:      200,
				ContentType: "application/json",
				Body:        `{"user":"{id}","post":"{postId}"}`,
			},
		},
		{
			Name:     "static-assets",
			Prefix:   "/static/",
			Methods:  []string{"GET"},
			Response: config.ResponseConfig{Status: 200, Body: "static asset"},
		},
		{
			Name:     "favicon",
			Contains: "favicon",
			Methods:  []string{"GET"},
			Response: config.ResponseConfig{Status: 204},
		},
	}
	cfg.Fallbacks = []config.FallbackConfig{
		{
			Methods: []string{"GET"},
			Response: config.ResponseConfig{
				Status:      404,
				ContentType: "application/json",
				Body:        `{"error":"no such resource"}`,
			},
		},
	}
	return cfg
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(testConfig(), WithLogger(observability.NopLogger()))
	require.NoError(t, err)
	return s
}

func doRequest(s *Server, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestServerExactRoute(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServerTemplatedRoute(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/users/42")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":"42"}`, rec.Body.String())

	rec = doRequest(s, http.MethodGet, "/api/users/42/posts/7")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":"42","post":"7"}`, rec.Body.String())
}

func TestServerPrefixAndContainsRoutes(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/static/css/app.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "static asset", rec.Body.String())

	rec = doRequest(s, http.MethodGet, "/favicon.ico")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestServerFallback(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	// GET has a configured fallback.
	rec := doRequest(s, http.MethodGet, "/no/such/route")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"no such resource"}`, rec.Body.String())

	// POST does not; the dispatcher answers 404 itself.
	rec = doRequest(s, http.MethodPost, "/no/such/route")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

func TestServerInvalidMethod(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	req.Method = "BREW"
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid request"}`, rec.Body.String())
}

func TestServerRequestIDHeader(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/health")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "caller-id")
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "caller-id", rec.Header().Get(middleware.RequestIDHeader))
}

func TestServerRegistrationError(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Routes = append(cfg.Routes, config.RouteConfig{
		Name:     "broken",
		Pattern:  "/api/{",
		Methods:  []string{"GET"},
		Response: config.ResponseConfig{Status: 200},
	})

	_, err := New(cfg, WithLogger(observability.NopLogger()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestServerNilConfig(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	require.Error(t, err)
}

func TestServerRouterStats(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	stats := s.Router().Stats()

	assert.Equal(t, 1, stats.ExactRoutes)
	assert.Equal(t, 2, stats.TemplatedRoutes)
	assert.Equal(t, 1, stats.PrefixRoutes)
	assert.Equal(t, 1, stats.ContainsRoutes)
	assert.Equal(t, 1, stats.Fallbacks)
}

func TestServerStartStop(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Listener.Address = "127.0.0.1:0"

	s, err := New(cfg, WithLogger(observability.NopLogger()))
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}
