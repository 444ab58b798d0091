package handler

import (
	"net/http"
	"strconv"

	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/service"
	customError "github.com/segyhp/helbflow/pkg/errors"
	"github.com/segyhp/helbflow/pkg/response"
)

type BudgetHandler struct {
	base
	service *service.BudgetService
}

func NewBudgetHandler(service *service.BudgetService, log *logger.Logger) *BudgetHandler {
	return &BudgetHandler{base: newBase(log), service: service}
}

func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBudgetRequest
	if !h.decode(w, r, &req) {
		return
	}

	budget, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, budget)
}

func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathUUID(w, r, "studentId")
	if !ok {
		return
	}

	budgets, err := h.service.List(r.Context(), studentID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, budgets)
}

func (h *BudgetHandler) ListForMonth(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathUUID(w, r, "studentId")
	if !ok {
		return
	}
	year, month, ok := pathPeriod(w, r)
	if !ok {
		return
	}

	budgets, err := h.service.ListForMonth(r.Context(), studentID, year, month)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, budgets)
}

// Status evaluates every budget of the month against the month's spending
func (h *BudgetHandler) Status(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathUUID(w, r, "studentId")
	if !ok {
		return
	}
	year, month, ok := pathPeriod(w, r)
	if !ok {
		return
	}

	statuses, err := h.service.EvaluateMonth(r.Context(), studentID, year, month)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, statuses)
}

// Analyze evaluates a month and attaches advisor feedback. The month comes from ?year= and
// ?month=, defaulting to the current one.
func (h *BudgetHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathUUID(w, r, "studentId")
	if !ok {
		return
	}

	year, month := h.service.CurrentPeriod()
	query := r.URL.Query()
	if raw := query.Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 {
			response.CodedError(w, http.StatusBadRequest, customError.ErrCodeValidation, "Invalid year", err)
			return
		}
		year = parsed
	}
	if raw := query.Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			response.CodedError(w, http.StatusBadRequest, customError.ErrCodeValidation, "Invalid month", err)
			return
		}
		month = parsed
	}

	analysis, err := h.service.Analyze(r.Context(), studentID, year, month)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, analysis)
}
