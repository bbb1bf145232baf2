// Package health contiene los controllers de health check.
package health

import (
	"encoding/json"
	"net/http"
)

// ReadinessCheck valida una dependencia externa (ej: ping a postgres o redis).
type ReadinessCheck func() error

// HealthController handles /healthz and /readyz.
type HealthController struct {
	checks []ReadinessCheck
}

// NewHealthController creates a health controller with optional readiness checks.
func NewHealthController(checks ...ReadinessCheck) *HealthController {
	return &HealthController{checks: checks}
}

// Live responde 200 mientras el proceso esté vivo.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Ready responde 200 si todas las dependencias responden, 503 si alguna falla.
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	for _, check := range c.checks {
		if err := check(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
