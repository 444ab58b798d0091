package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanTerms is the immutable input of one amortization run
type LoanTerms struct {
	Principal                 decimal.Decimal `json:"principal"`
	AnnualInterestRatePercent decimal.Decimal `json:"annualInterestRatePercent"`
	MonthlyPayment            decimal.Decimal `json:"monthlyPayment"`
	RepaymentStartDate        time.Time       `json:"repaymentStartDate"`
}

// ScheduleEntry represents one month of a repayment schedule
type ScheduleEntry struct {
	Month            int             `json:"month"`
	DueDate          time.Time       `json:"dueDate"`
	PaymentAmount    decimal.Decimal `json:"paymentAmount"`
	PrincipalPortion decimal.Decimal `json:"principalPortion"`
	InterestPortion  decimal.Decimal `json:"interestPortion"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// RepaymentSchedule is a generated schedule. Incomplete is set when the month cap was
// reached with a balance still outstanding; the entries up to the cap are still usable.
type RepaymentSchedule struct {
	Entries        []ScheduleEntry `json:"schedule"`
	Incomplete     bool            `json:"incomplete"`
	TotalPrincipal decimal.Decimal `json:"totalPrincipal"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
}

// Last returns the final entry, or nil for an empty schedule
func (s *RepaymentSchedule) Last() *ScheduleEntry {
	if len(s.Entries) == 0 {
		return nil
	}
	return &s.Entries[len(s.Entries)-1]
}

type ScheduleResponse struct {
	LoanID    uuid.UUID `json:"loanId"`
	StudentID uuid.UUID `json:"studentId"`
	*RepaymentSchedule
}

// LoanCalculatorRequest describes ad-hoc terms. Either MonthlyPayment or Months must be set;
// when the payment is absent it is derived so the loan clears within Months.
type LoanCalculatorRequest struct {
	Principal          decimal.Decimal     `json:"principal" validate:"decimal_gt=0"`
	InterestRate       decimal.Decimal     `json:"interestRate" validate:"decimal_gte=0,decimal_lte=100"`
	MonthlyPayment     decimal.NullDecimal `json:"monthlyPayment" validate:"omitempty,decimal_gt=0"`
	Months             int                 `json:"months" validate:"omitempty,gte=1,lte=120"`
	RepaymentStartDate *time.Time          `json:"repaymentStartDate,omitempty"`
}

// LoanCalculation is the payment used and the schedule it produces
type LoanCalculation struct {
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	*RepaymentSchedule
}
