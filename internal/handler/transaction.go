package handler

import (
	"net/http"

	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/service"
	"github.com/segyhp/helbflow/pkg/response"
)

type TransactionHandler struct {
	base
	service *service.TransactionService
}

func NewTransactionHandler(service *service.TransactionService, log *logger.Logger) *TransactionHandler {
	return &TransactionHandler{base: newBase(log), service: service}
}

// Create records a transaction, categorizing it automatically when no category is given
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTransactionRequest
	if !h.decode(w, r, &req) {
		return
	}

	tx, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, tx)
}

// List returns a student's transactions, optionally filtered by ?category=
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathUUID(w, r, "studentId")
	if !ok {
		return
	}

	var (
		transactions []*domain.Transaction
		err          error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		transactions, err = h.service.ListByCategory(r.Context(), studentID, category)
	} else {
		transactions, err = h.service.List(r.Context(), studentID)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, transactions)
}

func (h *TransactionHandler) ListForMonth(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathUUID(w, r, "studentId")
	if !ok {
		return
	}
	year, month, ok := pathPeriod(w, r)
	if !ok {
		return
	}

	transactions, err := h.service.ListForMonth(r.Context(), studentID, year, month)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, transactions)
}
