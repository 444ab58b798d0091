package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	AdviceTypeBudgeting    = "budgeting"
	AdviceTypeOverspending = "overspending"
	AdviceTypeSavings      = "savings"
	AdviceTypeFinancialTip = "financial_tip"
)

// Advice is a stored suggestion shown to a student
type Advice struct {
	ID        uuid.UUID `json:"id" db:"id"`
	StudentID uuid.UUID `json:"studentId" db:"student_id"`
	Type      string    `json:"type" db:"type"`
	Message   string    `json:"message" db:"message"`
	Category  *string   `json:"category,omitempty" db:"category"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// BudgetAdvice is one item of advisor output for a budget analysis
type BudgetAdvice struct {
	Category        string `json:"category"`
	Message         string `json:"message"`
	Type            string `json:"type"` // warning, tip, alert
	SuggestedAction string `json:"suggestedAction"`
}

// BudgetAnalysis is the response of a budget analysis: the computed statuses and the advice derived from them
type BudgetAnalysis struct {
	Statuses []BudgetStatus `json:"statuses"`
	Advice   []BudgetAdvice `json:"advice"`
}
