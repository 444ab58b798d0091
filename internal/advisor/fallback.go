package advisor

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/segyhp/helbflow/internal/domain"
)

// ErrNotConfigured is returned by the disabled oracle
var ErrNotConfigured = errors.New("advisor is not configured")

const (
	FallbackCategory = domain.DefaultTransactionCategory
	FallbackTip      = "Consider tracking your daily expenses to identify areas for savings."
)

// FallbackDisbursement is the average-cost breakdown used when the advisor is unavailable
func FallbackDisbursement() *domain.DisbursementCalculation {
	return &domain.DisbursementCalculation{
		Tuition:   decimal.NewFromInt(85000),
		Upkeep:    decimal.NewFromInt(12500),
		Books:     decimal.NewFromInt(8000),
		Supplies:  decimal.NewFromInt(5000),
		Total:     decimal.NewFromInt(110500),
		Reasoning: "Default calculation based on average costs",
		Fallback:  true,
	}
}

// FallbackAdvice is an empty advice list
func FallbackAdvice() []domain.BudgetAdvice {
	return []domain.BudgetAdvice{}
}

// Disabled is an Oracle that always fails, so callers always fall back
type Disabled struct{}

func (Disabled) SuggestDisbursement(context.Context, domain.DisbursementCalculationRequest) (*domain.DisbursementCalculation, error) {
	return nil, ErrNotConfigured
}

func (Disabled) CategorizeTransaction(context.Context, string, string) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) AnalyzeBudget(context.Context, BudgetAnalysisInput) ([]domain.BudgetAdvice, error) {
	return nil, ErrNotConfigured
}

func (Disabled) FinancialTip(context.Context, SpendingPattern) (string, error) {
	return "", ErrNotConfigured
}
