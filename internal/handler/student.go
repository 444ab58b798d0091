package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/service"
	"github.com/segyhp/helbflow/pkg/response"
)

type StudentHandler struct {
	base
	service *service.StudentService
}

func NewStudentHandler(service *service.StudentService, log *logger.Logger) *StudentHandler {
	return &StudentHandler{base: newBase(log), service: service}
}

func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateStudentRequest
	if !h.decode(w, r, &req) {
		return
	}

	student, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, student)
}

func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, students)
}

func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	student, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, student)
}

// GetByStudentNumber looks a student up by the institution-issued student ID
func (h *StudentHandler) GetByStudentNumber(w http.ResponseWriter, r *http.Request) {
	student, err := h.service.GetByStudentNumber(r.Context(), mux.Vars(r)["studentId"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, student)
}
