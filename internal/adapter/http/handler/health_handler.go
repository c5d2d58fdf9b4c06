package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthCheck probes a single dependency.
type HealthCheck func(ctx context.Context) error

// HealthHandler reports process liveness and dependency readiness.
type HealthHandler struct {
	checks map[string]HealthCheck
}

// NewHealthHandler creates a new HealthHandler. The checks map binds a
// dependency name to its probe; a nil or empty map means always ready.
func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Liveness reports that the process is up.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness runs every dependency probe and reports per-dependency status.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			deps[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	body := map[string]any{"status": "ready"}
	if status != http.StatusOK {
		body["status"] = "not ready"
	}
	if len(deps) > 0 {
		body["dependencies"] = deps
	}

	writeJSON(w, status, body)
}
