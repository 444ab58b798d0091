package engine

import (
	"iter"

	"github.com/shopspring/decimal"

	"github.com/segyhp/helbflow/internal/domain"
	customError "github.com/segyhp/helbflow/pkg/errors"
	"github.com/segyhp/helbflow/pkg/utils"
)

// MaxScheduleMonths caps every schedule at ten years of monthly payments
const MaxScheduleMonths = 120

// AmortizationEngine generates fixed-payment monthly repayment schedules.
//
// Interest is rounded half-to-even to two decimal places each month and the principal
// portion is derived by subtraction, so principal + interest always equals the payment
// except in the final month where the principal is clamped to the remaining balance.
// The engine holds no state and is safe for concurrent use.
type AmortizationEngine struct{}

func NewAmortizationEngine() *AmortizationEngine {
	return &AmortizationEngine{}
}

// ValidateTerms checks the input constraints of a schedule run
func ValidateTerms(terms domain.LoanTerms) error {
	if !terms.Principal.IsPositive() {
		return customError.WrapInvalidLoanTerms("principal must be greater than 0")
	}
	if !terms.MonthlyPayment.IsPositive() {
		return customError.WrapInvalidLoanTerms("monthly payment must be greater than 0")
	}
	if terms.AnnualInterestRatePercent.IsNegative() {
		return customError.WrapInvalidLoanTerms("annual interest rate must not be negative")
	}
	if terms.RepaymentStartDate.IsZero() {
		return customError.WrapInvalidLoanTerms("repayment start date is required")
	}
	return nil
}

// Entries returns the schedule as a lazy sequence. Each month is yielded with a nil error.
// A failure is yielded once as a zero entry with the error, after which the sequence ends.
// When the month cap is reached with a balance outstanding, ErrScheduleIncomplete is yielded
// after the last entry. The sequence can be ranged over any number of times.
func (e *AmortizationEngine) Entries(terms domain.LoanTerms) iter.Seq2[domain.ScheduleEntry, error] {
	return func(yield func(domain.ScheduleEntry, error) bool) {
		if err := ValidateTerms(terms); err != nil {
			yield(domain.ScheduleEntry{}, err)
			return
		}

		monthlyRate := utils.MonthlyRate(terms.AnnualInterestRatePercent)
		balance := terms.Principal

		for month := 1; month <= MaxScheduleMonths; month++ {
			interest := balance.Mul(monthlyRate).RoundBank(2)
			principal := decimal.Min(terms.MonthlyPayment.Sub(interest), balance)

			if !principal.IsPositive() {
				yield(domain.ScheduleEntry{}, customError.WrapNonAmortizingPayment(
					terms.MonthlyPayment.StringFixed(2),
					interest.StringFixed(2),
				))
				return
			}

			balance = decimal.Max(balance.Sub(principal), decimal.Zero)

			entry := domain.ScheduleEntry{
				Month:            month,
				DueDate:          utils.AddMonths(terms.RepaymentStartDate, month-1),
				PaymentAmount:    principal.Add(interest),
				PrincipalPortion: principal,
				InterestPortion:  interest,
				RemainingBalance: balance,
			}
			if !yield(entry, nil) {
				return
			}

			if balance.IsZero() {
				return
			}
		}

		yield(domain.ScheduleEntry{}, customError.WrapScheduleIncomplete(MaxScheduleMonths, balance.StringFixed(2)))
	}
}

// GenerateSchedule materializes the full schedule for terms.
// Invalid terms and non-amortizing payments are returned as errors; hitting the month cap is
// not an error and is reported through RepaymentSchedule.Incomplete.
func (e *AmortizationEngine) GenerateSchedule(terms domain.LoanTerms) (*domain.RepaymentSchedule, error) {
	schedule := &domain.RepaymentSchedule{
		Entries:        make([]domain.ScheduleEntry, 0, 12),
		TotalPrincipal: decimal.Zero,
		TotalInterest:  decimal.Zero,
	}

	for entry, err := range e.Entries(terms) {
		if err != nil {
			if customError.CodeOf(err) == customError.ErrCodeScheduleIncomplete {
				schedule.Incomplete = true
				break
			}
			return nil, err
		}

		schedule.Entries = append(schedule.Entries, entry)
		schedule.TotalPrincipal = schedule.TotalPrincipal.Add(entry.PrincipalPortion)
		schedule.TotalInterest = schedule.TotalInterest.Add(entry.InterestPortion)
	}

	return schedule, nil
}

// MonthlyPaymentFor returns the fixed monthly payment that clears principal within months
// at the given annual rate, rounded up to the cent so the loan never overruns the term.
func (e *AmortizationEngine) MonthlyPaymentFor(principal, annualInterestRatePercent decimal.Decimal, months int) (decimal.Decimal, error) {
	if !principal.IsPositive() {
		return decimal.Zero, customError.WrapInvalidLoanTerms("principal must be greater than 0")
	}
	if annualInterestRatePercent.IsNegative() {
		return decimal.Zero, customError.WrapInvalidLoanTerms("annual interest rate must not be negative")
	}
	if months <= 0 || months > MaxScheduleMonths {
		return decimal.Zero, customError.WrapInvalidLoanTerms("repayment period must be between 1 and 120 months")
	}

	n := decimal.NewFromInt(int64(months))
	rate := utils.MonthlyRate(annualInterestRatePercent)
	if rate.IsZero() {
		return principal.Div(n).RoundCeil(2), nil
	}

	// P * r * (1+r)^n / ((1+r)^n - 1)
	factor := decimal.NewFromInt(1).Add(rate).Pow(n)
	payment := principal.Mul(rate).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1)))

	return payment.RoundCeil(2), nil
}
