package handler

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/logger"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Pinger is implemented by whatever backs the document store
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HandleHealthz is the liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleReadyz reports ready once the store answers. A nil pinger (memory
// store) is always ready.
func HandleReadyz(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := store.Ping(ctx); err != nil {
				logger.FromContext(ctx).Error(LogMsgReadyzFailed, "error", err)
				respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: StatusUnavailable, Message: MsgStoreDown})
				return
			}
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GitCommit string `json:"git_commit,omitempty"`
}

// Build-time variables, set with -ldflags "-X ..."
var (
	Version   = "dev"
	GitCommit = "unset"
)

// HandleVersion returns the running build
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := Version
		if v == "dev" {
			if env := os.Getenv("VERSION"); env != "" {
				v = env
			}
		}
		respondJSON(w, http.StatusOK, VersionInfo{Version: v, GoVersion: runtime.Version(), GitCommit: GitCommit})
	}
}
