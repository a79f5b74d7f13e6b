package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/osse101/FreeLunch_Go/internal/logger"
)

// Pinger is anything the readiness check can check
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// VersionResponse reports the running build
type VersionResponse struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleReadyz reports unavailable until the database answers a ping
func HandleReadyz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.FromContext(ctx).Error(LogMsgReadinessFailed, "error", err)
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  StatusUnavailable,
				Message: ErrMsgDatabaseUnavailable,
			})
			return
		}

		writeJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleVersion is used for deployment verification
func HandleVersion(version, environment string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, VersionResponse{Version: version, Environment: environment})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
