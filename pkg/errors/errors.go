package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidLoanTerms     = errors.New("invalid loan terms")
	ErrNonAmortizingPayment = errors.New("payment too low to amortize")
	ErrScheduleIncomplete   = errors.New("schedule reached the month cap with a balance remaining")
	ErrDuplicateCategory    = errors.New("duplicate budget category")
	ErrInvalidBudgetPeriod  = errors.New("invalid budget period")

	ErrStudentNotFound      = errors.New("student not found")
	ErrStudentAlreadyExists = errors.New("student already exists")
	ErrLoanNotFound         = errors.New("loan not found")
	ErrRepaymentNotFound    = errors.New("repayment not found")
	ErrDisbursementNotFound = errors.New("disbursement not found")
	ErrAdviceNotFound       = errors.New("advice not found")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrAdvisorUnavailable   = errors.New("advisor unavailable")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidLoanTerms     = "INVALID_LOAN_TERMS"
	ErrCodeNonAmortizingPayment = "NON_AMORTIZING_PAYMENT"
	ErrCodeScheduleIncomplete   = "SCHEDULE_INCOMPLETE"
	ErrCodeDuplicateCategory    = "DUPLICATE_CATEGORY"
	ErrCodeInvalidBudgetPeriod  = "INVALID_BUDGET_PERIOD"
	ErrCodeStudentNotFound      = "STUDENT_NOT_FOUND"
	ErrCodeStudentAlreadyExists = "STUDENT_ALREADY_EXISTS"
	ErrCodeLoanNotFound         = "LOAN_NOT_FOUND"
	ErrCodeRepaymentNotFound    = "REPAYMENT_NOT_FOUND"
	ErrCodeDisbursementNotFound = "DISBURSEMENT_NOT_FOUND"
	ErrCodeAdviceNotFound       = "ADVICE_NOT_FOUND"
	ErrCodeInvalidStatus        = "INVALID_STATUS"
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeAdvisorError         = "ADVISOR_ERROR"
)

// Wrap common errors with business context
func WrapInvalidLoanTerms(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidLoanTerms,
		reason,
		ErrInvalidLoanTerms,
	)
}

func WrapNonAmortizingPayment(payment, interest string) *BusinessError {
	return NewBusinessError(
		ErrCodeNonAmortizingPayment,
		fmt.Sprintf("Monthly payment %s does not cover accruing interest %s", payment, interest),
		ErrNonAmortizingPayment,
	)
}

func WrapScheduleIncomplete(months int, balance string) *BusinessError {
	return NewBusinessError(
		ErrCodeScheduleIncomplete,
		fmt.Sprintf("Schedule truncated at %d months with %s outstanding", months, balance),
		ErrScheduleIncomplete,
	)
}

func WrapDuplicateCategory(category string) *BusinessError {
	return NewBusinessError(
		ErrCodeDuplicateCategory,
		fmt.Sprintf("Category %q appears in more than one budget period", category),
		ErrDuplicateCategory,
	)
}

func WrapInvalidBudgetPeriod(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidBudgetPeriod,
		reason,
		ErrInvalidBudgetPeriod,
	)
}

func WrapStudentNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeStudentNotFound,
		fmt.Sprintf("Student with ID %s not found", id),
		ErrStudentNotFound,
	)
}

func WrapStudentAlreadyExists(studentNumber string) *BusinessError {
	return NewBusinessError(
		ErrCodeStudentAlreadyExists,
		fmt.Sprintf("Student with student ID %s already exists", studentNumber),
		ErrStudentAlreadyExists,
	)
}

func WrapLoanNotFound(studentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan for student %s not found", studentID),
		ErrLoanNotFound,
	)
}

func WrapLoanIDNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", id),
		ErrLoanNotFound,
	)
}

func WrapRepaymentNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeRepaymentNotFound,
		fmt.Sprintf("Repayment with ID %s not found", id),
		ErrRepaymentNotFound,
	)
}

func WrapDisbursementNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeDisbursementNotFound,
		fmt.Sprintf("Disbursement with ID %s not found", id),
		ErrDisbursementNotFound,
	)
}

func WrapAdviceNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeAdviceNotFound,
		fmt.Sprintf("Advice with ID %s not found", id),
		ErrAdviceNotFound,
	)
}

func WrapInvalidStatus(kind, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidStatus,
		fmt.Sprintf("%q is not a valid %s status", status, kind),
		ErrInvalidStatus,
	)
}

func WrapInvalidTransition(kind, from, to string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidStatus,
		fmt.Sprintf("%s cannot move from %q to %q", kind, from, to),
		ErrInvalidStatus,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapAdvisorError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeAdvisorError,
		"advisor request failed",
		fmt.Errorf("%w: %v", ErrAdvisorUnavailable, err),
	)
}

// CodeOf returns the business error code carried by err, or "" when err is not a BusinessError.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
