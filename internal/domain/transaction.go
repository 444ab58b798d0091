package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common spending categories offered to the advisor when auto-categorizing
var TransactionCategories = []string{
	"food", "transport", "entertainment", "accommodation", "books",
	"supplies", "utilities", "healthcare", "clothing", "other",
}

const DefaultTransactionCategory = "other"

// Transaction is a single spend recorded against a student
type Transaction struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	StudentID         uuid.UUID       `json:"studentId" db:"student_id"`
	Amount            decimal.Decimal `json:"amount" db:"amount"`
	Category          string          `json:"category" db:"category"`
	Description       *string         `json:"description,omitempty" db:"description"`
	Date              time.Time       `json:"date" db:"date"`
	MerchantName      *string         `json:"merchantName,omitempty" db:"merchant_name"`
	IsAutoCategorized bool            `json:"isAutoCategorized" db:"is_auto_categorized"`
}

type CreateTransactionRequest struct {
	StudentID    uuid.UUID       `json:"studentId" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	Category     string          `json:"category"`
	Description  *string         `json:"description,omitempty"`
	MerchantName *string         `json:"merchantName,omitempty"`
	Date         *time.Time      `json:"date,omitempty"`
}
