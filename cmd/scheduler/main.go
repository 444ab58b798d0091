package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/segyhp/helbflow/internal/advisor"
	"github.com/segyhp/helbflow/internal/cache"
	"github.com/segyhp/helbflow/internal/config"
	"github.com/segyhp/helbflow/internal/events"
	"github.com/segyhp/helbflow/internal/jobs"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/repository"
	"github.com/segyhp/helbflow/internal/service"
)

const jobTimeout = 30 * time.Minute

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Error("Failed to load configuration", logger.FieldError, err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Component: logger.ComponentScheduler,
	})
	logger.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("Scheduler stopped with error", logger.FieldError, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	log.Info("Starting HELB scheduler...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPEnabled() {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue, log)
		if err != nil {
			return err
		}
		publisher = amqpPublisher
	}
	defer publisher.Close()

	var store cache.Cache = cache.NopCache{}
	if cfg.RedisEnabled() {
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		store = cache.NewRedisCache(client)
	}

	students := repository.NewStudentRepository(db)
	budgets := repository.NewBudgetRepository(db)
	advice := repository.NewAdviceRepository(db)

	loanService := service.NewLoanService(repository.NewLoanRepository(db), students, store, publisher, cfg, log)
	budgetService := service.NewBudgetService(budgets, repository.NewTransactionRepository(db), advice, students, advisor.Disabled{}, cfg, log)

	// Initialize cron scheduler
	c := jobs.NewCron(cfg.GetLocation(), log)

	// Schedule tasks
	if _, err := jobs.Schedule(c, cfg.Scheduler.OverdueSpec, jobs.NewOverdueJob(loanService, log), jobTimeout, log); err != nil {
		return err
	}
	alerts := jobs.NewBudgetAlertJob(budgets, budgetService, advice, publisher, cfg.Scheduler.Workers, log)
	if _, err := jobs.Schedule(c, cfg.Scheduler.BudgetAlertSpec, alerts, jobTimeout, log); err != nil {
		return err
	}

	// Start the scheduler
	c.Start()
	log.Info("Scheduler started successfully",
		"overdue_spec", cfg.Scheduler.OverdueSpec,
		"budget_alert_spec", cfg.Scheduler.BudgetAlertSpec,
		"timezone", cfg.Scheduler.Timezone)

	// Wait for interrupt signal to gracefully shutdown
	<-ctx.Done()

	log.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Info("Scheduler stopped")
	return nil
}
