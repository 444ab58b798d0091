package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/segyhp/helbflow/internal/advisor"
	"github.com/segyhp/helbflow/internal/config"
	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/engine"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/repository"
	customError "github.com/segyhp/helbflow/pkg/errors"
	"github.com/segyhp/helbflow/pkg/utils"
)

type BudgetService struct {
	budgets      repository.BudgetRepository
	transactions repository.TransactionRepository
	advice       repository.AdviceRepository
	students     repository.StudentRepository
	oracle       advisor.Oracle
	engine       *engine.BudgetVarianceEngine
	config       *config.Config
	log          *logger.Logger
	now          func() time.Time
}

func NewBudgetService(
	budgets repository.BudgetRepository,
	transactions repository.TransactionRepository,
	advice repository.AdviceRepository,
	students repository.StudentRepository,
	oracle advisor.Oracle,
	config *config.Config,
	log *logger.Logger,
) *BudgetService {
	return &BudgetService{
		budgets:      budgets,
		transactions: transactions,
		advice:       advice,
		students:     students,
		oracle:       oracle,
		engine:       engine.NewBudgetVarianceEngine(),
		config:       config,
		log:          log.WithComponent(logger.ComponentService),
		now:          time.Now,
	}
}

func (s *BudgetService) Create(ctx context.Context, req *domain.CreateBudgetRequest) (*domain.Budget, error) {
	if err := ensureStudent(ctx, s.students, req.StudentID); err != nil {
		return nil, err
	}

	threshold := s.config.GetDefaultAlertThreshold()
	if req.AlertThreshold.Valid {
		threshold = req.AlertThreshold.Decimal
	}

	budget := &domain.Budget{
		ID:             uuid.New(),
		StudentID:      req.StudentID,
		Category:       utils.NormalizeCategory(req.Category),
		BudgetAmount:   req.BudgetAmount,
		Month:          req.Month,
		Year:           req.Year,
		AlertThreshold: threshold,
		CreatedAt:      s.now(),
	}
	if budget.Category == "" {
		return nil, customError.WrapInvalidBudgetPeriod("category is required")
	}

	if err := s.budgets.Create(ctx, budget); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return budget, nil
}

func (s *BudgetService) List(ctx context.Context, studentID uuid.UUID) ([]*domain.Budget, error) {
	budgets, err := s.budgets.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return budgets, nil
}

func (s *BudgetService) ListForMonth(ctx context.Context, studentID uuid.UUID, year, month int) ([]*domain.Budget, error) {
	budgets, err := s.budgets.ListForMonth(ctx, studentID, year, month)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return budgets, nil
}

// EvaluateMonth computes the status of every budget a student holds for a month and
// stores the evaluated spend back on each budget.
func (s *BudgetService) EvaluateMonth(ctx context.Context, studentID uuid.UUID, year, month int) ([]domain.BudgetStatus, error) {
	statuses, _, err := s.evaluate(ctx, studentID, year, month)
	return statuses, err
}

// PeriodBounds returns the half-open range [start, end) of a budget month in the configured location.
func (s *BudgetService) PeriodBounds(year, month int) (time.Time, time.Time) {
	return utils.MonthBounds(year, month, s.config.GetLocation())
}

func (s *BudgetService) evaluate(ctx context.Context, studentID uuid.UUID, year, month int) ([]domain.BudgetStatus, []*domain.Transaction, error) {
	budgets, err := s.budgets.ListForMonth(ctx, studentID, year, month)
	if err != nil {
		return nil, nil, customError.WrapDatabaseError(err)
	}

	start, end := s.PeriodBounds(year, month)
	transactions, err := s.transactions.ListBetween(ctx, studentID, start, end)
	if err != nil {
		return nil, nil, customError.WrapDatabaseError(err)
	}

	periods := make([]domain.BudgetPeriod, 0, len(budgets))
	byCategory := make(map[string]*domain.Budget, len(budgets))
	for _, budget := range budgets {
		periods = append(periods, budget.Period(transactions))
		byCategory[budget.CategoryKey()] = budget
	}

	statuses, err := s.engine.Evaluate(periods)
	if err != nil {
		return nil, nil, err
	}

	for _, status := range statuses {
		budget, ok := byCategory[status.Category]
		if !ok || budget.SpentAmount.Equal(status.SpentAmount) {
			continue
		}
		if err := s.budgets.UpdateSpent(ctx, budget.ID, status.SpentAmount); err != nil {
			return nil, nil, customError.WrapDatabaseError(err)
		}
	}

	return statuses, transactions, nil
}

// Analyze evaluates a month and asks the advisor for advice on it. Advice is stored for the
// student; when the advisor is unavailable the statuses are returned without advice.
func (s *BudgetService) Analyze(ctx context.Context, studentID uuid.UUID, year, month int) (*domain.BudgetAnalysis, error) {
	if err := ensureStudent(ctx, s.students, studentID); err != nil {
		return nil, err
	}

	statuses, transactions, err := s.evaluate(ctx, studentID, year, month)
	if err != nil {
		return nil, err
	}

	advice, err := s.oracle.AnalyzeBudget(ctx, advisor.BudgetAnalysisInput{
		StudentID:     studentID,
		MonthlyIncome: s.config.GetDefaultMonthlyIncome(),
		Statuses:      statuses,
		Spending:      transactions,
	})
	if err != nil {
		s.log.WarnContext(ctx, "Budget analysis unavailable",
			logger.FieldOperation, "analyze_budget",
			logger.FieldStudentID, studentID,
			logger.FieldError, err)
		advice = advisor.FallbackAdvice()
	}

	for _, item := range advice {
		record := &domain.Advice{
			ID:        uuid.New(),
			StudentID: studentID,
			Type:      adviceType(item.Type),
			Message:   item.Message,
			CreatedAt: s.now(),
		}
		if category := utils.NormalizeCategory(item.Category); category != "" {
			record.Category = &category
		}
		if err := s.advice.Create(ctx, record); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
	}

	return &domain.BudgetAnalysis{Statuses: statuses, Advice: advice}, nil
}

// adviceType maps the advisor's severity onto a stored advice type
func adviceType(kind string) string {
	switch kind {
	case "alert", "warning":
		return domain.AdviceTypeOverspending
	default:
		return domain.AdviceTypeBudgeting
	}
}

// CurrentPeriod returns the year and month of now in the configured timezone
func (s *BudgetService) CurrentPeriod() (int, int) {
	now := s.now().In(s.config.GetLocation())
	return now.Year(), int(now.Month())
}
