package middleware

import (
	"log/slog"
	"net/http"
	"runtime"
)

// recoverStackSize caps the stack trace captured on panic.
const recoverStackSize = 4096

// Recover returns middleware that turns handler panics into 500 responses
// instead of tearing down the connection. The panic and a truncated stack are
// logged with the request context.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					stack := make([]byte, recoverStackSize)
					stack = stack[:runtime.Stack(stack, false)]

					log.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("stack", string(stack)),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
