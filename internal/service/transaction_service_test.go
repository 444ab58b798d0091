package service

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/helbflow/internal/advisor"
	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/mocks"
)

func newTransactionService(t *testing.T) (*TransactionService, *mocks.MockTransactionRepository, *mocks.MockStudentRepository, *mockOracle) {
	transactions := &mocks.MockTransactionRepository{}
	students := &mocks.MockStudentRepository{}
	oracle := newOracle(t)

	service := NewTransactionService(transactions, students, oracle, testConfig(), logger.Nop())
	service.now = clock
	return service, transactions, students, oracle
}

func TestTransactionService_CreateNormalizesCategory(t *testing.T) {
	service, transactions, students, _ := newTransactionService(t)
	studentID := uuid.New()

	students.On("GetByID", mock.Anything, studentID).Return(&domain.Student{ID: studentID}, nil)
	transactions.On("Create", mock.Anything, mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.Category == "food" && !tx.IsAutoCategorized && tx.Date.Equal(fixedNow)
	})).Return(nil)

	tx, err := service.Create(t.Context(), &domain.CreateTransactionRequest{
		StudentID: studentID,
		Amount:    decimal.NewFromInt(350),
		Category:  " Food ",
	})

	require.NoError(t, err)
	assert.Equal(t, "food", tx.Category)
	transactions.AssertExpectations(t)
}

func TestTransactionService_CreateAutoCategorizes(t *testing.T) {
	tests := []struct {
		name     string
		category string
		err      error
		expected string
	}{
		{name: "advisor category", category: "Transport", expected: "transport"},
		{name: "advisor failure", err: advisor.ErrNotConfigured, expected: advisor.FallbackCategory},
		{name: "blank advisor answer", category: "  ", expected: advisor.FallbackCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, transactions, students, oracle := newTransactionService(t)
			studentID := uuid.New()
			description := "Matatu to campus"
			date := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)

			students.On("GetByID", mock.Anything, studentID).Return(&domain.Student{ID: studentID}, nil)
			oracle.EXPECT().CategorizeTransaction(gomock.Any(), description, "").Return(tt.category, tt.err)
			transactions.On("Create", mock.Anything, mock.Anything).Return(nil)

			tx, err := service.Create(t.Context(), &domain.CreateTransactionRequest{
				StudentID:   studentID,
				Amount:      decimal.NewFromInt(100),
				Description: &description,
				Date:        &date,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, tx.Category)
			assert.True(t, tx.IsAutoCategorized)
			assert.Equal(t, date, tx.Date)
		})
	}
}

func TestTransactionService_ListForMonth(t *testing.T) {
	service, transactions, _, _ := newTransactionService(t)
	studentID := uuid.New()

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	transactions.On("ListBetween", mock.Anything, studentID, start, end).Return([]*domain.Transaction{}, nil)

	result, err := service.ListForMonth(t.Context(), studentID, 2024, 2)
	require.NoError(t, err)
	assert.Empty(t, result)
	transactions.AssertExpectations(t)
}

func TestTransactionService_ListByCategory(t *testing.T) {
	service, transactions, _, _ := newTransactionService(t)
	studentID := uuid.New()

	transactions.On("ListByCategory", mock.Anything, studentID, "books").Return([]*domain.Transaction{}, nil)

	_, err := service.ListByCategory(t.Context(), studentID, "BOOKS")
	require.NoError(t, err)
	transactions.AssertExpectations(t)
}
