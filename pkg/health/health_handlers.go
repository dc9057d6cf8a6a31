package health

import (
	"encoding/json"
	"net/http"
)

// Handler serves probe p. The overall probe answers 200 while degraded;
// readiness and liveness answer 503 for anything short of healthy.
func (hc *HealthChecker) Handler(p Probe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := hc.Run(p)

		code := http.StatusOK
		switch {
		case resp.Status == StatusUnhealthy:
			code = http.StatusServiceUnavailable
		case resp.Status == StatusDegraded && p != ProbeOverall:
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
