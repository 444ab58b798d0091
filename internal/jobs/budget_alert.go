package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/events"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/repository"
)

type budgetEvaluator interface {
	CurrentPeriod() (int, int)
	PeriodBounds(year, month int) (time.Time, time.Time)
	EvaluateMonth(ctx context.Context, studentID uuid.UUID, year, month int) ([]domain.BudgetStatus, error)
}

// BudgetAlertJob evaluates the current month for every student holding a budget. Each
// category that is near its limit or over budget gets an overspending advice record and a
// BudgetAlert message, at most once per category per month.
type BudgetAlertJob struct {
	budgets   repository.BudgetRepository
	evaluator budgetEvaluator
	advice    repository.AdviceRepository
	publisher events.Publisher
	workers   int
	log       *logger.Logger
	now       func() time.Time
}

func NewBudgetAlertJob(
	budgets repository.BudgetRepository,
	evaluator budgetEvaluator,
	advice repository.AdviceRepository,
	publisher events.Publisher,
	workers int,
	log *logger.Logger,
) *BudgetAlertJob {
	if workers <= 0 {
		workers = 1
	}
	return &BudgetAlertJob{
		budgets:   budgets,
		evaluator: evaluator,
		advice:    advice,
		publisher: publisher,
		workers:   workers,
		log:       log.WithComponent(logger.ComponentScheduler),
		now:       time.Now,
	}
}

func (j *BudgetAlertJob) Name() string { return "budget_alerts" }

// Run processes students concurrently. A failing student does not stop the others; their
// errors are joined into the returned error.
func (j *BudgetAlertJob) Run(ctx context.Context) error {
	year, month := j.evaluator.CurrentPeriod()

	studentIDs, err := j.budgets.ListStudentsWithBudgets(ctx, year, month)
	if err != nil {
		return fmt.Errorf("list students with budgets: %w", err)
	}

	var (
		mu     sync.Mutex
		errs   []error
		alerts int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.workers)

	for _, studentID := range studentIDs {
		g.Go(func() error {
			sent, err := j.alertStudent(gctx, studentID, year, month)

			mu.Lock()
			defer mu.Unlock()
			alerts += sent
			if err != nil {
				errs = append(errs, fmt.Errorf("student %s: %w", studentID, err))
			}
			return nil
		})
	}
	_ = g.Wait()

	j.log.InfoContext(ctx, "Budget alerts evaluated",
		"students", len(studentIDs),
		"alerts", alerts,
		"failures", len(errs))

	return errors.Join(errs...)
}

func (j *BudgetAlertJob) alertStudent(ctx context.Context, studentID uuid.UUID, year, month int) (int, error) {
	statuses, err := j.evaluator.EvaluateMonth(ctx, studentID, year, month)
	if err != nil {
		return 0, err
	}

	start, end := j.evaluator.PeriodBounds(year, month)

	sent := 0
	for _, status := range statuses {
		if !status.NeedsAlert() {
			continue
		}

		alerted, err := j.advice.HasAlert(ctx, studentID, status.Category, start, end)
		if err != nil {
			return sent, fmt.Errorf("check existing alert: %w", err)
		}
		if alerted {
			continue
		}

		category := status.Category
		advice := &domain.Advice{
			ID:        uuid.New(),
			StudentID: studentID,
			Type:      domain.AdviceTypeOverspending,
			Message:   alertMessage(status),
			Category:  &category,
			CreatedAt: j.now(),
		}
		if err := j.advice.Create(ctx, advice); err != nil {
			return sent, fmt.Errorf("store advice: %w", err)
		}

		if err := j.publisher.Publish(ctx, events.NewBudgetAlertMessage(studentID, year, month, status)); err != nil {
			j.log.LogError(ctx, "Failed to publish budget alert", err, j.Name(),
				logger.FieldStudentID, studentID,
				logger.FieldCategory, status.Category)
		}
		sent++
	}

	return sent, nil
}

func alertMessage(status domain.BudgetStatus) string {
	if status.State == domain.BudgetStateOver {
		return fmt.Sprintf("You have exceeded your %s budget by %s.",
			status.Category, status.VarianceAmount.StringFixed(2))
	}
	return fmt.Sprintf("You have used %s%% of your %s budget; %s remains.",
		status.PercentUsed.Decimal.StringFixed(0), status.Category, status.RemainingAmount.StringFixed(2))
}
