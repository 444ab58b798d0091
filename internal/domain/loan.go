package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	customError "github.com/segyhp/helbflow/pkg/errors"
)

const (
	LoanStatusActive    = "active"
	LoanStatusGraduated = "graduated"
	LoanStatusDefaulted = "defaulted"
	LoanStatusPaid      = "paid"
)

const (
	RepaymentStatusPending   = "pending"
	RepaymentStatusCompleted = "completed"
	RepaymentStatusFailed    = "failed"
)

const (
	PaymentMethodStandingOrder    = "standing_order"
	PaymentMethodPayrollDeduction = "payroll_deduction"
	PaymentMethodManual           = "manual"
)

// Loan represents a student loan account
type Loan struct {
	ID                 uuid.UUID           `json:"id" db:"id"`
	StudentID          uuid.UUID           `json:"studentId" db:"student_id"`
	TotalAmount        decimal.Decimal     `json:"totalAmount" db:"total_amount"`
	OutstandingAmount  decimal.Decimal     `json:"outstandingAmount" db:"outstanding_amount"`
	InterestRate       decimal.Decimal     `json:"interestRate" db:"interest_rate"`
	Status             string              `json:"status" db:"status"`
	GraduationDate     *time.Time          `json:"graduationDate,omitempty" db:"graduation_date"`
	RepaymentStartDate *time.Time          `json:"repaymentStartDate,omitempty" db:"repayment_start_date"`
	MonthlyRepayment   decimal.NullDecimal `json:"monthlyRepayment" db:"monthly_repayment"`
	CreatedAt          time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time           `json:"updatedAt" db:"updated_at"`
}

// Terms derives the amortization input from the persisted loan.
// The outstanding amount is the principal the schedule runs down.
func (l *Loan) Terms() (LoanTerms, error) {
	if l.RepaymentStartDate == nil {
		return LoanTerms{}, customError.WrapInvalidLoanTerms("loan has no repayment start date")
	}
	if !l.MonthlyRepayment.Valid {
		return LoanTerms{}, customError.WrapInvalidLoanTerms("loan has no monthly repayment amount")
	}

	return LoanTerms{
		Principal:                 l.OutstandingAmount,
		AnnualInterestRatePercent: l.InterestRate,
		MonthlyPayment:            l.MonthlyRepayment.Decimal,
		RepaymentStartDate:        *l.RepaymentStartDate,
	}, nil
}

// Repayment is a realized or pending instalment against a loan
type Repayment struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	LoanID        uuid.UUID       `json:"loanId" db:"loan_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	PaymentMethod string          `json:"paymentMethod" db:"payment_method"`
	Status        string          `json:"status" db:"status"`
	DueDate       time.Time       `json:"dueDate" db:"due_date"`
	PaidDate      *time.Time      `json:"paidDate,omitempty" db:"paid_date"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

// UpcomingRepayment is a pending repayment with its loan and borrower
type UpcomingRepayment struct {
	Repayment
	Loan    Loan    `json:"loan" db:"loan"`
	Student Student `json:"student" db:"student"`
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	StudentID          uuid.UUID           `json:"studentId" validate:"required"`
	TotalAmount        decimal.Decimal     `json:"totalAmount" validate:"decimal_gt=0"`
	OutstandingAmount  decimal.NullDecimal `json:"outstandingAmount" validate:"omitempty,decimal_gte=0"`
	InterestRate       decimal.Decimal     `json:"interestRate" validate:"decimal_gte=0,decimal_lte=100"`
	Status             string              `json:"status" validate:"omitempty,oneof=active graduated defaulted paid"`
	GraduationDate     *time.Time          `json:"graduationDate,omitempty"`
	RepaymentStartDate *time.Time          `json:"repaymentStartDate,omitempty"`
	MonthlyRepayment   decimal.NullDecimal `json:"monthlyRepayment" validate:"omitempty,decimal_gt=0"`
}

type CreateRepaymentRequest struct {
	LoanID        uuid.UUID       `json:"loanId" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	PaymentMethod string          `json:"paymentMethod" validate:"required,oneof=standing_order payroll_deduction manual"`
	Status        string          `json:"status" validate:"omitempty,oneof=pending completed failed"`
	DueDate       time.Time       `json:"dueDate" validate:"required"`
}

// LoanSummary is the repayment position of a loan
type LoanSummary struct {
	LoanID            uuid.UUID           `json:"loanId"`
	StudentID         uuid.UUID           `json:"studentId"`
	TotalAmount       decimal.Decimal     `json:"totalAmount"`
	OutstandingAmount decimal.Decimal     `json:"outstandingAmount"`
	TotalRepaid       decimal.Decimal     `json:"totalRepaid"`
	MonthlyRepayment  decimal.NullDecimal `json:"monthlyRepayment"`
	NextDue           *Repayment          `json:"nextDue,omitempty"`
	RemainingMonths   int                 `json:"remainingMonths"`
	PayoffDate        *time.Time          `json:"payoffDate,omitempty"`
	Incomplete        bool                `json:"incomplete"`
}

func IsValidRepaymentStatus(status string) bool {
	switch status {
	case RepaymentStatusPending, RepaymentStatusCompleted, RepaymentStatusFailed:
		return true
	}
	return false
}
