package httpx

import (
	"context"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one dependency, e.g. the session store.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// healthHandler returns 200 when every check passes and 503 otherwise.
// HEAD requests get the status only.
func healthHandler(checks ...HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		failures := map[string]string{}
		for _, c := range checks {
			if c.Check == nil {
				continue
			}
			if err := c.Check(ctx); err != nil {
				failures[c.Name] = err.Error()
			}
		}

		status, body := http.StatusOK, map[string]any{"status": "ok"}
		if len(failures) > 0 {
			status, body = http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "checks": failures}
		}
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			return
		}
		WriteJSON(w, status, body)
	}
}
