package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/expensio/api/internal/middleware"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("assigns a fresh ID and echoes it", func(t *testing.T) {
		t.Parallel()

		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := middleware.RequestIDFromContext(r.Context())
			require.True(t, ok)
			seen = id
		})

		rec := httptest.NewRecorder()
		middleware.RequestID()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		require.Equal(t, seen, rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("reuses a caller-provided ID", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-from-proxy")

		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = middleware.RequestIDFromContext(r.Context())
		})

		rec := httptest.NewRecorder()
		middleware.RequestID()(next).ServeHTTP(rec, req)
		require.Equal(t, "req-from-proxy", seen)
	})

	t.Run("extractor surfaces the ID to logs", func(t *testing.T) {
		t.Parallel()

		extract := middleware.RequestIDExtractor()

		_, ok := extract(context.Background())
		require.False(t, ok)

		var attrOK bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attr, ok := extract(r.Context())
			attrOK = ok
			require.Equal(t, "request_id", attr.Key)
		})
		middleware.RequestID()(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.True(t, attrOK)
	})
}
