package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/confguard/confguard/internal/api/middleware"
	"github.com/confguard/confguard/internal/domain/deviation"
	"github.com/confguard/confguard/internal/domain/ignore"
	"github.com/confguard/confguard/internal/pkg/errors"
	"github.com/confguard/confguard/internal/pkg/logger"
	"github.com/confguard/confguard/internal/pkg/utils"
	"github.com/confguard/confguard/internal/pkg/validator"
)

// DeviationHandler serves snapshot ingestion and deviation queries
type DeviationHandler struct {
	service   deviation.Service
	validator *validator.Validator
	logger    *logger.Logger
}

// NewDeviationHandler creates a new deviation handler
func NewDeviationHandler(service deviation.Service, v *validator.Validator, log *logger.Logger) *DeviationHandler {
	return &DeviationHandler{service: service, validator: v, logger: log}
}

type recordSnapshotRequest struct {
	Snapshot string `json:"snapshot" validate:"required"`
}

type addIgnoreRequest struct {
	Regex string `json:"regex" validate:"required,max=512"`
}

// RecordSnapshot handles POST /devices/{deviceID}/snapshots
func (h *DeviationHandler) RecordSnapshot(w http.ResponseWriter, r *http.Request) {
	deviceID, err := pathID(r, "deviceID")
	if err != nil {
		writeErr(w, err)
		return
	}

	var req recordSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, errors.BadRequest("invalid request body"))
		return
	}
	if verrs := h.validator.Validate(req); len(verrs) > 0 {
		writeErr(w, errors.ValidationError("Validation failed", verrs))
		return
	}

	res, err := h.service.Record(r.Context(), deviceID, req.Snapshot)
	if err != nil {
		writeErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, res)
}

// List handles GET /devices/{deviceID}/deviations
func (h *DeviationHandler) List(w http.ResponseWriter, r *http.Request) {
	deviceID, err := pathID(r, "deviceID")
	if err != nil {
		writeErr(w, err)
		return
	}

	events, err := h.service.ListByDevice(r.Context(), deviceID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if events == nil {
		events = []*deviation.Event{}
	}

	utils.WriteSuccess(w, http.StatusOK, events)
}

// AddIgnore handles POST /devices/{deviceID}/ignores
func (h *DeviationHandler) AddIgnore(w http.ResponseWriter, r *http.Request) {
	deviceID, err := pathID(r, "deviceID")
	if err != nil {
		writeErr(w, err)
		return
	}

	var req addIgnoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, errors.BadRequest("invalid request body"))
		return
	}
	if verrs := h.validator.Validate(req); len(verrs) > 0 {
		writeErr(w, errors.ValidationError("Validation failed", verrs))
		return
	}

	id, err := h.service.AddIgnore(r.Context(), deviceID, req.Regex, middleware.GetActor(r.Context()))
	if err != nil {
		writeErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, map[string]int64{"id": id})
}

// ListIgnores handles GET /devices/{deviceID}/ignores
func (h *DeviationHandler) ListIgnores(w http.ResponseWriter, r *http.Request) {
	deviceID, err := pathID(r, "deviceID")
	if err != nil {
		writeErr(w, err)
		return
	}

	patterns, err := h.service.ListIgnores(r.Context(), deviceID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if patterns == nil {
		patterns = []*ignore.Pattern{}
	}

	utils.WriteSuccess(w, http.StatusOK, patterns)
}
