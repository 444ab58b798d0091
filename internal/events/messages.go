package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/helbflow/internal/domain"
)

// Routing keys
const (
	KeyBudgetAlert      = "budget.alert"
	KeyRepaymentOverdue = "repayment.overdue"
)

// Message is anything the publisher can route
type Message interface {
	RoutingKey() string
}

// BudgetAlertMessage is emitted for a category that is near its limit or over budget
type BudgetAlertMessage struct {
	StudentID      uuid.UUID           `json:"studentId"`
	Category       string              `json:"category"`
	State          domain.BudgetState  `json:"state"`
	PercentUsed    decimal.NullDecimal `json:"percentUsed"`
	VarianceAmount decimal.Decimal     `json:"varianceAmount"`
	Month          int                 `json:"month"`
	Year           int                 `json:"year"`
	Timestamp      time.Time           `json:"timestamp"`
}

func NewBudgetAlertMessage(studentID uuid.UUID, year, month int, status domain.BudgetStatus) *BudgetAlertMessage {
	return &BudgetAlertMessage{
		StudentID:      studentID,
		Category:       status.Category,
		State:          status.State,
		PercentUsed:    status.PercentUsed,
		VarianceAmount: status.VarianceAmount,
		Month:          month,
		Year:           year,
		Timestamp:      time.Now(),
	}
}

func (m *BudgetAlertMessage) RoutingKey() string { return KeyBudgetAlert }

// RepaymentOverdueMessage is emitted when a pending repayment passes its due date
type RepaymentOverdueMessage struct {
	RepaymentID uuid.UUID       `json:"repaymentId"`
	LoanID      uuid.UUID       `json:"loanId"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"dueDate"`
	Timestamp   time.Time       `json:"timestamp"`
}

func NewRepaymentOverdueMessage(repayment *domain.Repayment) *RepaymentOverdueMessage {
	return &RepaymentOverdueMessage{
		RepaymentID: repayment.ID,
		LoanID:      repayment.LoanID,
		Amount:      repayment.Amount,
		DueDate:     repayment.DueDate,
		Timestamp:   time.Now(),
	}
}

func (m *RepaymentOverdueMessage) RoutingKey() string { return KeyRepaymentOverdue }

// Encode converts a message to JSON bytes
func Encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
