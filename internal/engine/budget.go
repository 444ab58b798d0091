package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/segyhp/helbflow/internal/domain"
	customError "github.com/segyhp/helbflow/pkg/errors"
	"github.com/segyhp/helbflow/pkg/utils"
)

var hundred = decimal.NewFromInt(100)

// BudgetVarianceEngine computes per-category spend status for a budgeting period.
// It holds no state and is safe for concurrent use.
type BudgetVarianceEngine struct{}

func NewBudgetVarianceEngine() *BudgetVarianceEngine {
	return &BudgetVarianceEngine{}
}

// Evaluate returns one status per period ordered by normalized category.
// Two periods that normalize to the same category fail the whole call.
func (e *BudgetVarianceEngine) Evaluate(periods []domain.BudgetPeriod) ([]domain.BudgetStatus, error) {
	byCategory := make(map[string]domain.BudgetStatus, len(periods))

	for _, period := range periods {
		status, err := e.EvaluatePeriod(period)
		if err != nil {
			return nil, err
		}
		if _, exists := byCategory[status.Category]; exists {
			return nil, customError.WrapDuplicateCategory(status.Category)
		}
		byCategory[status.Category] = status
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	statuses := make([]domain.BudgetStatus, 0, len(categories))
	for _, category := range categories {
		statuses = append(statuses, byCategory[category])
	}

	return statuses, nil
}

// EvaluatePeriod computes the status of a single period. Transactions from other
// categories are ignored even when the caller passes an unfiltered list.
func (e *BudgetVarianceEngine) EvaluatePeriod(period domain.BudgetPeriod) (domain.BudgetStatus, error) {
	category := utils.NormalizeCategory(period.Category)
	if category == "" {
		return domain.BudgetStatus{}, customError.WrapInvalidBudgetPeriod("category is required")
	}
	if period.BudgetAmount.IsNegative() {
		return domain.BudgetStatus{}, customError.WrapInvalidBudgetPeriod("budget amount for " + category + " must not be negative")
	}

	threshold := period.Threshold()
	if threshold.IsNegative() || threshold.GreaterThan(hundred) {
		return domain.BudgetStatus{}, customError.WrapInvalidBudgetPeriod("alert threshold for " + category + " must be between 0 and 100")
	}

	spent := decimal.Zero
	for _, tx := range period.Transactions {
		if utils.NormalizeCategory(tx.Category) != category {
			continue
		}
		spent = spent.Add(tx.Amount)
	}

	status := domain.BudgetStatus{
		Category:        category,
		BudgetAmount:    period.BudgetAmount,
		SpentAmount:     spent,
		RemainingAmount: period.BudgetAmount.Sub(spent),
		VarianceAmount:  spent.Sub(period.BudgetAmount),
	}

	// zero budget: percent used is undefined, never divide
	if period.BudgetAmount.IsZero() {
		status.State = domain.BudgetStateUnder
		if spent.IsPositive() {
			status.State = domain.BudgetStateOver
		}
		return status, nil
	}

	percent := utils.Percent(spent, period.BudgetAmount)
	status.PercentUsed = decimal.NewNullDecimal(percent.Round(2))

	switch {
	case spent.GreaterThan(period.BudgetAmount):
		status.State = domain.BudgetStateOver
	case percent.GreaterThanOrEqual(threshold):
		status.State = domain.BudgetStateNearLimit
	default:
		status.State = domain.BudgetStateUnder
	}

	return status, nil
}
