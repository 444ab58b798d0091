package handler

import (
	"net/http"

	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/service"
	"github.com/segyhp/helbflow/pkg/response"
)

type AdviceHandler struct {
	base
	service *service.AdviceService
}

func NewAdviceHandler(service *service.AdviceService, log *logger.Logger) *AdviceHandler {
	return &AdviceHandler{base: newBase(log), service: service}
}

func (h *AdviceHandler) List(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathUUID(w, r, "studentId")
	if !ok {
		return
	}

	advice, err := h.service.List(r.Context(), studentID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, advice)
}

func (h *AdviceHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	advice, err := h.service.MarkRead(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, advice)
}

func (h *AdviceHandler) GenerateTip(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathUUID(w, r, "studentId")
	if !ok {
		return
	}

	tip, err := h.service.GenerateTip(r.Context(), studentID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, tip)
}
