package server

import (
	"encoding/json"
	"net/http"

	"github.com/expensio/api/internal/config"
	"github.com/expensio/api/internal/database"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

type rootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Error    string `json:"error,omitempty"`
}

// handleRoot reports API identity and that the process is running.
func handleRoot(settings config.Settings) http.HandlerFunc {
	resp := rootResponse{
		Message: settings.APITitle,
		Version: settings.APIVersion,
		Status:  "running",
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, resp)
	}
}

// handleHealth is liveness only. It must never touch the database: the
// service deliberately reports alive even when the database is down.
func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: statusHealthy})
	}
}

// handleHealthDB probes the database with one session and a trivial query.
//
// A failed probe still answers HTTP 200 and surfaces the outage in the body;
// callers must inspect the body, not the status code. Unusual (most systems
// answer 503) but intentional: this endpoint reports on a dependency, not on
// the service itself.
func handleHealthDB(check database.CheckFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := check(r.Context()); err != nil {
			writeJSON(w, http.StatusOK, healthResponse{
				Status:   statusUnhealthy,
				Database: "disconnected",
				Error:    err.Error(),
			})
			return
		}

		writeJSON(w, http.StatusOK, healthResponse{
			Status:   statusHealthy,
			Database: "connected",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
