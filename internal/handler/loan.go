package handler

import (
	"net/http"

	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/service"
	"github.com/segyhp/helbflow/pkg/response"
)

type LoanHandler struct {
	base
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService, log *logger.Logger) *LoanHandler {
	return &LoanHandler{base: newBase(log), service: service}
}

func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLoanRequest
	if !h.decode(w, r, &req) {
		return
	}

	loan, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, loan)
}

func (h *LoanHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.ListActive(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, loans)
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathUUID(w, r, "studentId")
	if !ok {
		return
	}

	loan, err := h.service.GetByStudent(r.Context(), studentID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, loan)
}

// Schedule returns the amortization schedule of a student's loan
func (h *LoanHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathUUID(w, r, "studentId")
	if !ok {
		return
	}

	schedule, err := h.service.Schedule(r.Context(), studentID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, schedule)
}

func (h *LoanHandler) Summary(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathUUID(w, r, "studentId")
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), studentID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, summary)
}

// Calculate produces a schedule for terms that are not stored as a loan
func (h *LoanHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req domain.LoanCalculatorRequest
	if !h.decode(w, r, &req) {
		return
	}

	calculation, err := h.service.Calculate(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, calculation)
}

func (h *LoanHandler) CreateRepayment(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRepaymentRequest
	if !h.decode(w, r, &req) {
		return
	}

	repayment, err := h.service.CreateRepayment(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, repayment)
}

func (h *LoanHandler) ListRepayments(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathUUID(w, r, "loanId")
	if !ok {
		return
	}

	repayments, err := h.service.ListRepayments(r.Context(), loanID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, repayments)
}

func (h *LoanHandler) UpdateRepaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateStatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	repayment, err := h.service.UpdateRepaymentStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, repayment)
}

func (h *LoanHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}

	repayments, err := h.service.Upcoming(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, repayments)
}
