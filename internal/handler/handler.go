package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/segyhp/helbflow/internal/logger"
	customError "github.com/segyhp/helbflow/pkg/errors"
	"github.com/segyhp/helbflow/pkg/response"
)

// base carries what every handler needs to read requests and write errors
type base struct {
	validator *validator.Validate
	log       *logger.Logger
}

func newBase(log *logger.Logger) base {
	return base{
		validator: NewValidator(),
		log:       log.WithComponent(logger.ComponentHTTP),
	}
}

// decode reads a JSON body into dst and validates it. On failure it writes the response
// and returns false.
func (b base) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.CodedError(w, http.StatusBadRequest, customError.ErrCodeValidation, "Invalid request body", err)
		return false
	}

	if err := b.validator.Struct(dst); err != nil {
		response.CodedError(w, http.StatusBadRequest, customError.ErrCodeValidation, "Validation failed", err)
		return false
	}

	return true
}

// writeError maps a service error onto an HTTP status
func (b base) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var be *customError.BusinessError
	if !errors.As(err, &be) {
		b.log.LogError(r.Context(), "Unhandled error", err, r.URL.Path)
		response.InternalServerError(w, "Internal server error", err)
		return
	}

	status := statusFor(be.Code)
	if status >= http.StatusInternalServerError {
		b.log.LogError(r.Context(), be.Message, err, r.URL.Path, logger.FieldMethod, r.Method)
	}

	// the wrapped cause stays in the log
	response.CodedError(w, status, be.Code, be.Message, nil)
}

func statusFor(code string) int {
	switch code {
	case customError.ErrCodeStudentNotFound,
		customError.ErrCodeLoanNotFound,
		customError.ErrCodeRepaymentNotFound,
		customError.ErrCodeDisbursementNotFound,
		customError.ErrCodeAdviceNotFound:
		return http.StatusNotFound
	case customError.ErrCodeStudentAlreadyExists:
		return http.StatusConflict
	case customError.ErrCodeInvalidLoanTerms,
		customError.ErrCodeNonAmortizingPayment,
		customError.ErrCodeDuplicateCategory,
		customError.ErrCodeInvalidBudgetPeriod,
		customError.ErrCodeInvalidStatus:
		return http.StatusUnprocessableEntity
	case customError.ErrCodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.CodedError(w, http.StatusBadRequest, customError.ErrCodeValidation, fmt.Sprintf("Invalid %s", name), err)
		return uuid.Nil, false
	}
	return id, true
}

// pathPeriod reads the {year} and {month} path variables
func pathPeriod(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil || year < 2000 {
		response.CodedError(w, http.StatusBadRequest, customError.ErrCodeValidation, "Invalid year", err)
		return 0, 0, false
	}

	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		response.CodedError(w, http.StatusBadRequest, customError.ErrCodeValidation, "Invalid month", err)
		return 0, 0, false
	}

	return year, month, true
}

// queryLimit reads ?limit=, returning 0 when absent so services apply their default
func queryLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		response.CodedError(w, http.StatusBadRequest, customError.ErrCodeValidation, "Invalid limit", err)
		return 0, false
	}
	return limit, true
}
