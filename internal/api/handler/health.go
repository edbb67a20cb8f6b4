package handler

import (
	"context"
	"net/http"

	"github.com/ardelio/heart-risk-api/internal/api/response"
)

// Pinger reports backing-store connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, "ok", map[string]string{
		"status": "ok",
	})
}

// ReadyCheck returns readiness status including store connectivity
func ReadyCheck(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			response.Fail(w, http.StatusServiceUnavailable, "store not ready")
			return
		}

		response.OK(w, "ready", map[string]string{
			"status": "ready",
		})
	}
}
