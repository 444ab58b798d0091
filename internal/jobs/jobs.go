package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/segyhp/helbflow/internal/logger"
)

// Job is a unit of scheduled work
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// NewCron builds a seconds-aware scheduler in loc. Overlapping runs of a job are skipped and
// panics are recovered and logged.
func NewCron(loc *time.Location, log *logger.Logger) *cron.Cron {
	cronLog := cronLogger{log: log.WithComponent(logger.ComponentScheduler)}
	return cron.New(
		cron.WithSeconds(),
		cron.WithLocation(loc),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)
}

// Schedule registers job under spec. Each run gets its own context bounded by timeout.
func Schedule(c *cron.Cron, spec string, job Job, timeout time.Duration, log *logger.Logger) (cron.EntryID, error) {
	log = log.WithComponent(logger.ComponentScheduler).With(logger.FieldJob, job.Name())

	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		log.InfoContext(ctx, "Job started")

		if err := job.Run(ctx); err != nil {
			log.LogError(ctx, "Job failed", err, job.Name(), logger.FieldDuration, time.Since(start).Milliseconds())
			return
		}
		log.InfoContext(ctx, "Job finished", logger.FieldDuration, time.Since(start).Milliseconds())
	})
}

// cronLogger adapts the scheduler's logger to slog
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, logger.FieldError, err)...)
}
