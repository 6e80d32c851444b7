package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/expensio/api/internal/config"
	"github.com/expensio/api/internal/database"
	"github.com/expensio/api/internal/middleware"
)

// NewRouter assembles the HTTP surface: API metadata at the root, the
// liveness probe, and the database probe. dbCheck is the only collaborator
// touching shared state; handlers otherwise run independently, one session
// per request.
func NewRouter(settings config.Settings, dbCheck database.CheckFunc, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS(
		middleware.WithAllowOrigins(settings.AllowedOrigins...),
		middleware.WithAllowCredentials(),
	))

	r.Get("/", handleRoot(settings))
	r.Get("/health", handleHealth())
	r.Get("/health/db", handleHealthDB(dbCheck))

	return r
}
