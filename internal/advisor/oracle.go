package advisor

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/helbflow/internal/domain"
)

// BudgetAnalysisInput is what the advisor sees of a student's month
type BudgetAnalysisInput struct {
	StudentID     uuid.UUID             `json:"studentId"`
	MonthlyIncome decimal.Decimal       `json:"monthlyIncome"`
	Statuses      []domain.BudgetStatus `json:"budgets"`
	Spending      []*domain.Transaction `json:"spending"`
}

// SpendingPattern is spend per category, used for tips
type SpendingPattern map[string]decimal.Decimal

// Oracle produces advisory suggestions from an external model. Every method may fail;
// callers substitute the defaults in this package instead of surfacing the error.
//
//go:generate mockgen -destination=mocks/mock_oracle.go -source=oracle.go Oracle
type Oracle interface {
	SuggestDisbursement(ctx context.Context, req domain.DisbursementCalculationRequest) (*domain.DisbursementCalculation, error)
	CategorizeTransaction(ctx context.Context, description, merchantName string) (string, error)
	AnalyzeBudget(ctx context.Context, input BudgetAnalysisInput) ([]domain.BudgetAdvice, error)
	FinancialTip(ctx context.Context, pattern SpendingPattern) (string, error)
}
