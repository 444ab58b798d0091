package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/helbflow/internal/domain"
)

// Lookups that find nothing return sql.ErrNoRows; updates of a missing row return
// sql.ErrNoRows as well. Services translate it into the matching not-found error.

// StudentRepository defines the interface for student data operations
type StudentRepository interface {
	// Create inserts a new student
	Create(ctx context.Context, student *domain.Student) error

	// GetByID retrieves a student by primary key
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error)

	// GetByStudentNumber retrieves a student by the institution-issued student ID
	GetByStudentNumber(ctx context.Context, studentNumber string) (*domain.Student, error)

	// List returns every student, newest first
	List(ctx context.Context) ([]*domain.Student, error)

	// Update replaces the mutable profile fields of a student
	Update(ctx context.Context, student *domain.Student) error
}

// DisbursementRepository defines the interface for disbursement data operations
type DisbursementRepository interface {
	Create(ctx context.Context, disbursement *domain.Disbursement) error

	// GetByID retrieves a single disbursement
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Disbursement, error)

	// List returns disbursements newest first, optionally for one student
	List(ctx context.Context, studentID *uuid.UUID) ([]*domain.Disbursement, error)

	// ListRecent returns the latest disbursements joined with their student
	ListRecent(ctx context.Context, limit int) ([]*domain.DisbursementWithStudent, error)

	// UpdateStatus sets the status and processed time of a disbursement
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, processedAt *time.Time) (*domain.Disbursement, error)
}

// TransactionRepository defines the interface for student spending records
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error

	// ListByStudent returns a student's transactions, latest first
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.Transaction, error)

	// ListByCategory returns a student's transactions in one category, latest first
	ListByCategory(ctx context.Context, studentID uuid.UUID, category string) ([]*domain.Transaction, error)

	// ListBetween returns a student's transactions dated in [start, end), latest first
	ListBetween(ctx context.Context, studentID uuid.UUID, start, end time.Time) ([]*domain.Transaction, error)
}

// BudgetRepository defines the interface for monthly category budgets
type BudgetRepository interface {
	Create(ctx context.Context, budget *domain.Budget) error

	// ListByStudent returns every budget of a student, latest period first
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.Budget, error)

	// ListForMonth returns a student's budgets for one period
	ListForMonth(ctx context.Context, studentID uuid.UUID, year, month int) ([]*domain.Budget, error)

	// ListStudentsWithBudgets returns the IDs of students holding a budget for the period
	ListStudentsWithBudgets(ctx context.Context, year, month int) ([]uuid.UUID, error)

	// UpdateSpent stores the evaluated spend of a budget
	UpdateSpent(ctx context.Context, id uuid.UUID, spent decimal.Decimal) error
}

// LoanRepository defines the interface for loan and repayment data operations
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByID retrieves a loan by primary key
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// GetByStudentID retrieves the most recent loan of a student
	GetByStudentID(ctx context.Context, studentID uuid.UUID) (*domain.Loan, error)

	// Update updates a loan
	Update(ctx context.Context, loan *domain.Loan) error

	// ListActive returns every loan in active status
	ListActive(ctx context.Context) ([]*domain.Loan, error)

	// CreateRepayment inserts a repayment record
	CreateRepayment(ctx context.Context, repayment *domain.Repayment) error

	// GetRepayment retrieves a single repayment
	GetRepayment(ctx context.Context, id uuid.UUID) (*domain.Repayment, error)

	// ListRepayments returns a loan's repayments, latest due date first
	ListRepayments(ctx context.Context, loanID uuid.UUID) ([]*domain.Repayment, error)

	// UpdateRepaymentStatus sets the status and paid date of a repayment
	UpdateRepaymentStatus(ctx context.Context, id uuid.UUID, status string, paidDate *time.Time) (*domain.Repayment, error)

	// ListUpcomingRepayments returns pending repayments, soonest first, with loan and student
	ListUpcomingRepayments(ctx context.Context, limit int) ([]*domain.UpcomingRepayment, error)

	// ListOverdueRepayments returns pending repayments due before asOf
	ListOverdueRepayments(ctx context.Context, asOf time.Time) ([]*domain.Repayment, error)
}

// AdviceRepository defines the interface for stored advice
type AdviceRepository interface {
	Create(ctx context.Context, advice *domain.Advice) error

	// ListByStudent returns a student's advice, newest first
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.Advice, error)

	// MarkRead flags an advice record as read
	MarkRead(ctx context.Context, id uuid.UUID) (*domain.Advice, error)

	// HasAlert reports whether an overspending alert for category was stored in [start, end)
	HasAlert(ctx context.Context, studentID uuid.UUID, category string, start, end time.Time) (bool, error)
}

// StatsRepository provides the aggregate queries behind the dashboard
type StatsRepository interface {
	CountStudents(ctx context.Context) (int64, error)

	// TotalActiveOutstanding sums the outstanding amount of active loans
	TotalActiveOutstanding(ctx context.Context) (decimal.Decimal, error)

	// CompletedDisbursementsBetween sums completed disbursements created in [start, end)
	CompletedDisbursementsBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// RepaymentCounts returns the number of repayments and how many of them completed
	RepaymentCounts(ctx context.Context) (total int64, completed int64, err error)
}
