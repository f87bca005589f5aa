package handlers

import (
	"net/http"

	"github.com/confguard/confguard/internal/domain/baseline"
	"github.com/confguard/confguard/internal/pkg/logger"
	"github.com/confguard/confguard/internal/pkg/utils"
)

// BaselineHandler serves the baseline registry endpoints
type BaselineHandler struct {
	service baseline.Service
	logger  *logger.Logger
}

// NewBaselineHandler creates a new baseline handler
func NewBaselineHandler(service baseline.Service, log *logger.Logger) *BaselineHandler {
	return &BaselineHandler{service: service, logger: log}
}

// Get handles GET /devices/{deviceID}/baseline
func (h *BaselineHandler) Get(w http.ResponseWriter, r *http.Request) {
	deviceID, err := pathID(r, "deviceID")
	if err != nil {
		writeErr(w, err)
		return
	}

	active, err := h.service.GetActive(r.Context(), deviceID)
	if err != nil {
		writeErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, active)
}

// History handles GET /devices/{deviceID}/baseline/history
func (h *BaselineHandler) History(w http.ResponseWriter, r *http.Request) {
	deviceID, err := pathID(r, "deviceID")
	if err != nil {
		writeErr(w, err)
		return
	}

	entries, err := h.service.History(r.Context(), deviceID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if entries == nil {
		entries = []*baseline.HistoryEntry{}
	}

	utils.WriteSuccess(w, http.StatusOK, entries)
}
