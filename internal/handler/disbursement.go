package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/service"
	customError "github.com/segyhp/helbflow/pkg/errors"
	"github.com/segyhp/helbflow/pkg/response"
)

type DisbursementHandler struct {
	base
	service *service.DisbursementService
}

func NewDisbursementHandler(service *service.DisbursementService, log *logger.Logger) *DisbursementHandler {
	return &DisbursementHandler{base: newBase(log), service: service}
}

// Calculate returns a suggested disbursement breakdown for a student profile
func (h *DisbursementHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req domain.DisbursementCalculationRequest
	if !h.decode(w, r, &req) {
		return
	}

	response.Success(w, h.service.Calculate(r.Context(), &req))
}

func (h *DisbursementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateDisbursementRequest
	if !h.decode(w, r, &req) {
		return
	}

	disbursement, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, disbursement)
}

func (h *DisbursementHandler) List(w http.ResponseWriter, r *http.Request) {
	var studentID *uuid.UUID
	if raw := r.URL.Query().Get("studentId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.CodedError(w, http.StatusBadRequest, customError.ErrCodeValidation, "Invalid studentId", err)
			return
		}
		studentID = &id
	}

	disbursements, err := h.service.List(r.Context(), studentID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, disbursements)
}

func (h *DisbursementHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}

	disbursements, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, disbursements)
}

func (h *DisbursementHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateStatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	disbursement, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, disbursement)
}
