package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/confguard/confguard/internal/api/middleware"
	"github.com/confguard/confguard/internal/domain/proposal"
	"github.com/confguard/confguard/internal/pkg/errors"
	"github.com/confguard/confguard/internal/pkg/logger"
	"github.com/confguard/confguard/internal/pkg/utils"
	"github.com/confguard/confguard/internal/pkg/validator"
)

// ProposalHandler serves the baseline-change workflow endpoints
type ProposalHandler struct {
	service   proposal.Service
	validator *validator.Validator
	logger    *logger.Logger
}

// NewProposalHandler creates a new proposal handler
func NewProposalHandler(service proposal.Service, v *validator.Validator, log *logger.Logger) *ProposalHandler {
	return &ProposalHandler{service: service, validator: v, logger: log}
}

type createProposalRequest struct {
	Snapshot string `json:"snapshot" validate:"required"`
	Comment  string `json:"comment" validate:"max=1024"`
}

type decideProposalRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

// Create handles POST /devices/{deviceID}/baseline/proposals
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	deviceID, err := pathID(r, "deviceID")
	if err != nil {
		writeErr(w, err)
		return
	}

	var req createProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, errors.BadRequest("invalid request body"))
		return
	}
	if verrs := h.validator.Validate(req); len(verrs) > 0 {
		writeErr(w, errors.ValidationError("Validation failed", verrs))
		return
	}

	id, err := h.service.Propose(r.Context(), deviceID, req.Snapshot, req.Comment, middleware.GetActor(r.Context()))
	if err != nil {
		writeErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"id":     id,
		"status": proposal.StatusPending,
	})
}

// List handles GET /baseline/proposals?status=
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if list == nil {
		list = []*proposal.Proposal{}
	}

	utils.WriteSuccess(w, http.StatusOK, list)
}

// Decide handles PUT /baseline/proposals/{id}
func (h *ProposalHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	var req decideProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, errors.BadRequest("invalid request body"))
		return
	}
	if verrs := h.validator.Validate(req); len(verrs) > 0 {
		writeErr(w, errors.ValidationError("Validation failed", verrs))
		return
	}

	status, err := h.service.Decide(r.Context(), id, req.Action, middleware.GetActor(r.Context()))
	if err != nil {
		writeErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{"status": status})
}
