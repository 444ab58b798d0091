package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/events"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/mocks"
)

type mockEvaluator struct {
	mock.Mock
}

func (m *mockEvaluator) CurrentPeriod() (int, int) {
	args := m.Called()
	return args.Int(0), args.Int(1)
}

func (m *mockEvaluator) PeriodBounds(year, month int) (time.Time, time.Time) {
	args := m.Called(year, month)
	return args.Get(0).(time.Time), args.Get(1).(time.Time)
}

func (m *mockEvaluator) EvaluateMonth(ctx context.Context, studentID uuid.UUID, year, month int) ([]domain.BudgetStatus, error) {
	args := m.Called(ctx, studentID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetStatus), args.Error(1)
}

type mockMarker struct {
	mock.Mock
}

func (m *mockMarker) MarkOverdue(ctx context.Context, asOf time.Time) (int, error) {
	args := m.Called(ctx, asOf)
	return args.Int(0), args.Error(1)
}

var (
	marchStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	marchEnd   = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
)

func status(category string, state domain.BudgetState) domain.BudgetStatus {
	return domain.BudgetStatus{
		Category:        category,
		BudgetAmount:    decimal.NewFromInt(1000),
		SpentAmount:     decimal.NewFromInt(900),
		RemainingAmount: decimal.NewFromInt(100),
		PercentUsed:     decimal.NewNullDecimal(decimal.NewFromInt(90)),
		VarianceAmount:  decimal.NewFromInt(-100),
		State:           state,
	}
}

func TestOverdueJob(t *testing.T) {
	marker := &mockMarker{}
	now := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	job := NewOverdueJob(marker, logger.Nop())
	job.now = func() time.Time { return now }

	marker.On("MarkOverdue", mock.Anything, now).Return(3, nil).Once()
	require.NoError(t, job.Run(t.Context()))

	marker.On("MarkOverdue", mock.Anything, now).Return(0, assert.AnError).Once()
	assert.ErrorIs(t, job.Run(t.Context()), assert.AnError)
}

func TestBudgetAlertJob(t *testing.T) {
	budgets := &mocks.MockBudgetRepository{}
	advice := &mocks.MockAdviceRepository{}
	publisher := &mocks.MockPublisher{}
	evaluator := &mockEvaluator{}

	alerting, quiet := uuid.New(), uuid.New()

	evaluator.On("CurrentPeriod").Return(2024, 3)
	evaluator.On("PeriodBounds", 2024, 3).Return(marchStart, marchEnd)
	budgets.On("ListStudentsWithBudgets", mock.Anything, 2024, 3).Return([]uuid.UUID{alerting, quiet}, nil)
	evaluator.On("EvaluateMonth", mock.Anything, alerting, 2024, 3).Return([]domain.BudgetStatus{
		status("food", domain.BudgetStateNearLimit),
		status("rent", domain.BudgetStateUnder),
		status("transport", domain.BudgetStateOver),
	}, nil)
	evaluator.On("EvaluateMonth", mock.Anything, quiet, 2024, 3).Return([]domain.BudgetStatus{
		status("food", domain.BudgetStateUnder),
	}, nil)

	advice.On("HasAlert", mock.Anything, alerting, mock.Anything, marchStart, marchEnd).Return(false, nil)
	advice.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Advice) bool {
		return a.StudentID == alerting && a.Type == domain.AdviceTypeOverspending && a.Category != nil
	})).Return(nil).Twice()

	var published atomic.Int32
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(msg events.Message) bool {
		alert, ok := msg.(*events.BudgetAlertMessage)
		return ok && alert.StudentID == alerting && alert.Month == 3 && alert.Year == 2024
	})).Run(func(mock.Arguments) { published.Add(1) }).Return(nil)

	job := NewBudgetAlertJob(budgets, evaluator, advice, publisher, 2, logger.Nop())

	require.NoError(t, job.Run(t.Context()))
	assert.Equal(t, int32(2), published.Load())
	advice.AssertExpectations(t)
}

func TestBudgetAlertJob_ContinuesAfterFailure(t *testing.T) {
	budgets := &mocks.MockBudgetRepository{}
	advice := &mocks.MockAdviceRepository{}
	publisher := &mocks.MockPublisher{}
	evaluator := &mockEvaluator{}

	broken, healthy := uuid.New(), uuid.New()

	evaluator.On("CurrentPeriod").Return(2024, 3)
	evaluator.On("PeriodBounds", 2024, 3).Return(marchStart, marchEnd)
	budgets.On("ListStudentsWithBudgets", mock.Anything, 2024, 3).Return([]uuid.UUID{broken, healthy}, nil)
	evaluator.On("EvaluateMonth", mock.Anything, broken, 2024, 3).Return(nil, errors.New("duplicate category"))
	evaluator.On("EvaluateMonth", mock.Anything, healthy, 2024, 3).Return([]domain.BudgetStatus{
		status("books", domain.BudgetStateOver),
	}, nil)
	advice.On("HasAlert", mock.Anything, healthy, "books", marchStart, marchEnd).Return(false, nil)
	advice.On("Create", mock.Anything, mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	job := NewBudgetAlertJob(budgets, evaluator, advice, publisher, 1, logger.Nop())

	err := job.Run(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), broken.String())
	assert.NotContains(t, err.Error(), healthy.String())
	evaluator.AssertExpectations(t)
	advice.AssertNumberOfCalls(t, "Create", 1)
}

func TestBudgetAlertJob_AlertsOncePerMonth(t *testing.T) {
	budgets := &mocks.MockBudgetRepository{}
	advice := &mocks.MockAdviceRepository{}
	publisher := &mocks.MockPublisher{}
	evaluator := &mockEvaluator{}

	student := uuid.New()

	evaluator.On("CurrentPeriod").Return(2024, 3)
	evaluator.On("PeriodBounds", 2024, 3).Return(marchStart, marchEnd)
	budgets.On("ListStudentsWithBudgets", mock.Anything, 2024, 3).Return([]uuid.UUID{student}, nil)
	evaluator.On("EvaluateMonth", mock.Anything, student, 2024, 3).Return([]domain.BudgetStatus{
		status("food", domain.BudgetStateOver),
		status("transport", domain.BudgetStateNearLimit),
	}, nil)

	advice.On("HasAlert", mock.Anything, student, "food", marchStart, marchEnd).Return(true, nil)
	advice.On("HasAlert", mock.Anything, student, "transport", marchStart, marchEnd).Return(false, nil)
	advice.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Advice) bool {
		return a.Category != nil && *a.Category == "transport"
	})).Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	job := NewBudgetAlertJob(budgets, evaluator, advice, publisher, 1, logger.Nop())

	require.NoError(t, job.Run(t.Context()))
	advice.AssertNumberOfCalls(t, "Create", 1)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestBudgetAlertJob_AlertLookupFailure(t *testing.T) {
	budgets := &mocks.MockBudgetRepository{}
	advice := &mocks.MockAdviceRepository{}
	publisher := &mocks.MockPublisher{}
	evaluator := &mockEvaluator{}

	student := uuid.New()

	evaluator.On("CurrentPeriod").Return(2024, 3)
	evaluator.On("PeriodBounds", 2024, 3).Return(marchStart, marchEnd)
	budgets.On("ListStudentsWithBudgets", mock.Anything, 2024, 3).Return([]uuid.UUID{student}, nil)
	evaluator.On("EvaluateMonth", mock.Anything, student, 2024, 3).Return([]domain.BudgetStatus{
		status("food", domain.BudgetStateOver),
	}, nil)
	advice.On("HasAlert", mock.Anything, student, "food", marchStart, marchEnd).Return(false, assert.AnError)

	job := NewBudgetAlertJob(budgets, evaluator, advice, publisher, 1, logger.Nop())

	err := job.Run(t.Context())
	require.ErrorIs(t, err, assert.AnError)
	advice.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestAlertMessage(t *testing.T) {
	over := status("transport", domain.BudgetStateOver)
	over.VarianceAmount = decimal.NewFromInt(1200)
	assert.Equal(t, "You have exceeded your transport budget by 1200.00.", alertMessage(over))

	near := status("food", domain.BudgetStateNearLimit)
	assert.Equal(t, "You have used 90% of your food budget; 100.00 remains.", alertMessage(near))
}

func TestSchedule(t *testing.T) {
	c := NewCron(time.UTC, logger.Nop())

	_, err := Schedule(c, "0 0 8 * * *", NewOverdueJob(&mockMarker{}, logger.Nop()), time.Minute, logger.Nop())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = Schedule(c, "not a spec", NewOverdueJob(&mockMarker{}, logger.Nop()), time.Minute, logger.Nop())
	assert.Error(t, err)
}
