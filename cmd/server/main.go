package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/helbflow/internal/advisor"
	"github.com/segyhp/helbflow/internal/cache"
	"github.com/segyhp/helbflow/internal/config"
	"github.com/segyhp/helbflow/internal/events"
	"github.com/segyhp/helbflow/internal/handler"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/repository"
	"github.com/segyhp/helbflow/internal/service"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Error("Failed to load configuration", logger.FieldError, err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logger.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped with error", logger.FieldError, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := initDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	store, closeCache, err := initCache(cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	publisher := initPublisher(cfg, log)
	defer publisher.Close()

	oracle := initOracle(cfg, log)

	// Initialize repositories
	students := repository.NewStudentRepository(db)
	disbursements := repository.NewDisbursementRepository(db)
	transactions := repository.NewTransactionRepository(db)
	budgets := repository.NewBudgetRepository(db)
	loans := repository.NewLoanRepository(db)
	advice := repository.NewAdviceRepository(db)
	stats := repository.NewStatsRepository(db)

	// Initialize services and handlers
	handlers := handler.Handlers{
		Health:        handler.NewHealthHandler(db, store, cfg.GetHealthTimeout()),
		Dashboard:     handler.NewDashboardHandler(service.NewDashboardService(stats, store, cfg, log), log),
		Students:      handler.NewStudentHandler(service.NewStudentService(students, log), log),
		Disbursements: handler.NewDisbursementHandler(service.NewDisbursementService(disbursements, students, oracle, store, cfg, log), log),
		Transactions:  handler.NewTransactionHandler(service.NewTransactionService(transactions, students, oracle, cfg, log), log),
		Budgets:       handler.NewBudgetHandler(service.NewBudgetService(budgets, transactions, advice, students, oracle, cfg, log), log),
		Loans:         handler.NewLoanHandler(service.NewLoanService(loans, students, store, publisher, cfg, log), log),
		Advice:        handler.NewAdviceHandler(service.NewAdviceService(advice, transactions, students, oracle, log), log),
	}

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      handler.NewRouter(handlers, log),
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal to gracefully shutdown
	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("Server exited")
	return nil
}

func initDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Database.EnsureSchema {
		if err := repository.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

// initCache connects to Redis when configured and otherwise caches nothing
func initCache(cfg *config.Config, log *logger.Logger) (cache.Cache, func(), error) {
	if !cfg.RedisEnabled() {
		log.Warn("Redis not configured, caching disabled")
		return cache.NopCache{}, func() {}, nil
	}

	client, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}

	return cache.NewRedisCache(client), func() { client.Close() }, nil
}

func initPublisher(cfg *config.Config, log *logger.Logger) events.Publisher {
	if !cfg.AMQPEnabled() {
		return events.NopPublisher{}
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue, log)
	if err != nil {
		log.Warn("AMQP unavailable, events disabled", logger.FieldError, err)
		return events.NopPublisher{}
	}
	return publisher
}

func initOracle(cfg *config.Config, log *logger.Logger) advisor.Oracle {
	if !cfg.AdvisorEnabled() {
		log.Warn("OPENAI_API_KEY not set, advisor answers fall back to defaults")
		return advisor.Disabled{}
	}
	return advisor.NewOpenAIOracle(cfg, log)
}
