package handlers

import (
	"database/sql"
	"net/http"

	"github.com/confguard/confguard/internal/pkg/utils"
)

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	db *sql.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz handles GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz handles GET /readyz; not ready until the store answers
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		utils.WriteErrorMessage(w, http.StatusServiceUnavailable,
			"NOT_READY", "database unreachable")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
}
