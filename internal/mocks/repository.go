package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/helbflow/internal/domain"
)

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) GetByStudentNumber(ctx context.Context, studentNumber string) (*domain.Student, error) {
	args := m.Called(ctx, studentNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) List(ctx context.Context) ([]*domain.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

type MockDisbursementRepository struct {
	mock.Mock
}

func (m *MockDisbursementRepository) Create(ctx context.Context, disbursement *domain.Disbursement) error {
	args := m.Called(ctx, disbursement)
	return args.Error(0)
}

func (m *MockDisbursementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Disbursement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Disbursement), args.Error(1)
}

func (m *MockDisbursementRepository) List(ctx context.Context, studentID *uuid.UUID) ([]*domain.Disbursement, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Disbursement), args.Error(1)
}

func (m *MockDisbursementRepository) ListRecent(ctx context.Context, limit int) ([]*domain.DisbursementWithStudent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DisbursementWithStudent), args.Error(1)
}

func (m *MockDisbursementRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, processedAt *time.Time) (*domain.Disbursement, error) {
	args := m.Called(ctx, id, status, processedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Disbursement), args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.Transaction, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByCategory(ctx context.Context, studentID uuid.UUID, category string) ([]*domain.Transaction, error) {
	args := m.Called(ctx, studentID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListBetween(ctx context.Context, studentID uuid.UUID, start, end time.Time) ([]*domain.Transaction, error) {
	args := m.Called(ctx, studentID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.Budget, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListForMonth(ctx context.Context, studentID uuid.UUID, year, month int) ([]*domain.Budget, error) {
	args := m.Called(ctx, studentID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListStudentsWithBudgets(ctx context.Context, year, month int) ([]uuid.UUID, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockBudgetRepository) UpdateSpent(ctx context.Context, id uuid.UUID, spent decimal.Decimal) error {
	args := m.Called(ctx, id, spent)
	return args.Error(0)
}

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetByStudentID(ctx context.Context, studentID uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) ListActive(ctx context.Context) ([]*domain.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) CreateRepayment(ctx context.Context, repayment *domain.Repayment) error {
	args := m.Called(ctx, repayment)
	return args.Error(0)
}

func (m *MockLoanRepository) GetRepayment(ctx context.Context, id uuid.UUID) (*domain.Repayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Repayment), args.Error(1)
}

func (m *MockLoanRepository) ListRepayments(ctx context.Context, loanID uuid.UUID) ([]*domain.Repayment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Repayment), args.Error(1)
}

func (m *MockLoanRepository) UpdateRepaymentStatus(ctx context.Context, id uuid.UUID, status string, paidDate *time.Time) (*domain.Repayment, error) {
	args := m.Called(ctx, id, status, paidDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Repayment), args.Error(1)
}

func (m *MockLoanRepository) ListUpcomingRepayments(ctx context.Context, limit int) ([]*domain.UpcomingRepayment, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UpcomingRepayment), args.Error(1)
}

func (m *MockLoanRepository) ListOverdueRepayments(ctx context.Context, asOf time.Time) ([]*domain.Repayment, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Repayment), args.Error(1)
}

type MockAdviceRepository struct {
	mock.Mock
}

func (m *MockAdviceRepository) Create(ctx context.Context, advice *domain.Advice) error {
	args := m.Called(ctx, advice)
	return args.Error(0)
}

func (m *MockAdviceRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.Advice, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Advice), args.Error(1)
}

func (m *MockAdviceRepository) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Advice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Advice), args.Error(1)
}

func (m *MockAdviceRepository) HasAlert(ctx context.Context, studentID uuid.UUID, category string, start, end time.Time) (bool, error) {
	args := m.Called(ctx, studentID, category, start, end)
	return args.Bool(0), args.Error(1)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) CountStudents(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) TotalActiveOutstanding(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStatsRepository) CompletedDisbursementsBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStatsRepository) RepaymentCounts(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}
