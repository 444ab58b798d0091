package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/helbflow/pkg/utils"
)

// DefaultAlertThresholdPercent applies when a budget does not carry its own threshold
var DefaultAlertThresholdPercent = decimal.NewFromInt(80)

// Budget is a persisted monthly spending ceiling for one category
type Budget struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	StudentID      uuid.UUID       `json:"studentId" db:"student_id"`
	Category       string          `json:"category" db:"category"`
	BudgetAmount   decimal.Decimal `json:"budgetAmount" db:"budget_amount"`
	SpentAmount    decimal.Decimal `json:"spentAmount" db:"spent_amount"`
	Month          int             `json:"month" db:"month"`
	Year           int             `json:"year" db:"year"`
	AlertThreshold decimal.Decimal `json:"alertThreshold" db:"alert_threshold"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
}

type CreateBudgetRequest struct {
	StudentID      uuid.UUID           `json:"studentId" validate:"required"`
	Category       string              `json:"category" validate:"required"`
	BudgetAmount   decimal.Decimal     `json:"budgetAmount" validate:"decimal_gte=0"`
	Month          int                 `json:"month" validate:"required,gte=1,lte=12"`
	Year           int                 `json:"year" validate:"required,gte=2000"`
	AlertThreshold decimal.NullDecimal `json:"alertThreshold" validate:"omitempty,decimal_gte=0,decimal_lte=100"`
}

// BudgetState classifies spend against a ceiling
type BudgetState string

const (
	BudgetStateUnder     BudgetState = "under"
	BudgetStateNearLimit BudgetState = "near-limit"
	BudgetStateOver      BudgetState = "over"
)

// CategorizedAmount is the engine's view of a transaction
type CategorizedAmount struct {
	Amount   decimal.Decimal `json:"amount" toml:"amount"`
	Category string          `json:"category" toml:"category"`
}

// BudgetPeriod is the input to a variance evaluation for one category.
// Transactions may be pre-filtered or span every category; evaluation re-filters them.
type BudgetPeriod struct {
	Category              string              `json:"category"`
	BudgetAmount          decimal.Decimal     `json:"budgetAmount"`
	AlertThresholdPercent decimal.NullDecimal `json:"alertThresholdPercent"`
	Transactions          []CategorizedAmount `json:"transactions"`
}

// Threshold returns the alert threshold, falling back to the default when unset
func (p BudgetPeriod) Threshold() decimal.Decimal {
	if p.AlertThresholdPercent.Valid {
		return p.AlertThresholdPercent.Decimal
	}
	return DefaultAlertThresholdPercent
}

// BudgetStatus is the evaluated spend position of one category.
// PercentUsed is null when the budget amount is zero.
type BudgetStatus struct {
	Category        string              `json:"category"`
	BudgetAmount    decimal.Decimal     `json:"budgetAmount"`
	SpentAmount     decimal.Decimal     `json:"spentAmount"`
	RemainingAmount decimal.Decimal     `json:"remainingAmount"`
	PercentUsed     decimal.NullDecimal `json:"percentUsed"`
	State           BudgetState         `json:"state"`
	VarianceAmount  decimal.Decimal     `json:"varianceAmount"`
}

// NeedsAlert reports whether the status should raise a dashboard alert
func (s BudgetStatus) NeedsAlert() bool {
	return s.State == BudgetStateOver || s.State == BudgetStateNearLimit
}

// Period builds the evaluation input for a persisted budget from a student's transactions
func (b *Budget) Period(transactions []*Transaction) BudgetPeriod {
	amounts := make([]CategorizedAmount, 0, len(transactions))
	for _, tx := range transactions {
		amounts = append(amounts, CategorizedAmount{Amount: tx.Amount, Category: tx.Category})
	}

	return BudgetPeriod{
		Category:              b.Category,
		BudgetAmount:          b.BudgetAmount,
		AlertThresholdPercent: decimal.NewNullDecimal(b.AlertThreshold),
		Transactions:          amounts,
	}
}

// CategoryKey is the normalized category used to match transactions
func (b *Budget) CategoryKey() string {
	return utils.NormalizeCategory(b.Category)
}
