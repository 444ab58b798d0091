package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/engine"
)

func TestRenderSchedule(t *testing.T) {
	schedule, err := engine.NewAmortizationEngine().GenerateSchedule(domain.LoanTerms{
		Principal:                 decimal.NewFromInt(2500),
		AnnualInterestRatePercent: decimal.Zero,
		MonthlyPayment:            decimal.NewFromInt(1000),
		RepaymentStartDate:        time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	out := RenderSchedule(schedule)
	assert.Contains(t, out, "Principal")
	assert.Contains(t, out, "2024-02-29")
	assert.Contains(t, out, "500.00")
	assert.Contains(t, out, "over 3 months")
	assert.NotContains(t, out, "month cap")
}

func TestRenderSchedule_Incomplete(t *testing.T) {
	out := RenderSchedule(&domain.RepaymentSchedule{Incomplete: true})
	assert.Contains(t, out, "month cap")
}

func TestRenderBudget(t *testing.T) {
	statuses := []domain.BudgetStatus{
		{
			Category:     "books",
			BudgetAmount: decimal.Zero,
			SpentAmount:  decimal.NewFromInt(50),
			State:        domain.BudgetStateOver,
		},
		{
			Category:     "food",
			BudgetAmount: decimal.NewFromInt(5000),
			SpentAmount:  decimal.NewFromInt(4200),
			PercentUsed:  decimal.NewNullDecimal(decimal.NewFromInt(84)),
			State:        domain.BudgetStateNearLimit,
		},
	}

	out := RenderBudget(statuses)
	assert.Contains(t, out, "books")
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "84.00%")
	assert.Contains(t, out, "near-limit")
}
