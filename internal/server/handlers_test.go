package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/expensio/api/internal/config"
	"github.com/expensio/api/internal/database"
	"github.com/expensio/api/internal/logger"
	"github.com/expensio/api/internal/server"
)

func testSettings() config.Settings {
	return config.Settings{
		APITitle:       "Expense Management API",
		APIVersion:     "1.0.0",
		AllowedOrigins: []string{"http://localhost:3000"},
	}
}

func newRouter(dbCheck database.CheckFunc) http.Handler {
	return server.NewRouter(testSettings(), dbCheck, logger.NewNope())
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestRootEndpoint(t *testing.T) {
	t.Parallel()

	rec, body := get(t, newRouter(nil), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Expense Management API", body["message"])
	require.Equal(t, "1.0.0", body["version"])
	require.Equal(t, "running", body["status"])
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("reports healthy", func(t *testing.T) {
		t.Parallel()

		rec, body := get(t, newRouter(nil), "/health")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, map[string]any{"status": "healthy"}, body)
	})

	t.Run("does not depend on database reachability", func(t *testing.T) {
		t.Parallel()

		down := func(context.Context) error { return errors.New("connection refused") }
		rec, body := get(t, newRouter(down), "/health")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "healthy", body["status"])
	})
}

func TestHealthDBEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("reports connected when the probe succeeds", func(t *testing.T) {
		t.Parallel()

		up := func(context.Context) error { return nil }
		rec, body := get(t, newRouter(up), "/health/db")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "healthy", body["status"])
		require.Equal(t, "connected", body["database"])
	})

	t.Run("still answers 200 when the database is down", func(t *testing.T) {
		t.Parallel()

		down := func(context.Context) error { return errors.New("dial tcp: connection refused") }
		rec, body := get(t, newRouter(down), "/health/db")

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "unhealthy", body["status"])
		require.Equal(t, "disconnected", body["database"])
		require.NotEmpty(t, body["error"])
	})
}

func TestRouterMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("responses carry a request ID", func(t *testing.T) {
		t.Parallel()

		rec, _ := get(t, newRouter(nil), "/health")
		require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("allowed origin gets CORS headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		newRouter(nil).ServeHTTP(rec, req)

		require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})
}
