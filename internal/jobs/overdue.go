package jobs

import (
	"context"
	"time"

	"github.com/segyhp/helbflow/internal/logger"
)

type overdueMarker interface {
	MarkOverdue(ctx context.Context, asOf time.Time) (int, error)
}

// OverdueJob fails pending repayments whose due date has passed
type OverdueJob struct {
	loans overdueMarker
	log   *logger.Logger
	now   func() time.Time
}

func NewOverdueJob(loans overdueMarker, log *logger.Logger) *OverdueJob {
	return &OverdueJob{
		loans: loans,
		log:   log.WithComponent(logger.ComponentScheduler),
		now:   time.Now,
	}
}

func (j *OverdueJob) Name() string { return "mark_overdue_repayments" }

func (j *OverdueJob) Run(ctx context.Context) error {
	marked, err := j.loans.MarkOverdue(ctx, j.now())
	if err != nil {
		return err
	}

	j.log.InfoContext(ctx, "Overdue repayments marked", "count", marked)
	return nil
}
