package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/segyhp/helbflow/internal/advisor"
	"github.com/segyhp/helbflow/internal/config"
	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/repository"
	customError "github.com/segyhp/helbflow/pkg/errors"
	"github.com/segyhp/helbflow/pkg/utils"
)

type TransactionService struct {
	transactions repository.TransactionRepository
	students     repository.StudentRepository
	oracle       advisor.Oracle
	config       *config.Config
	log          *logger.Logger
	now          func() time.Time
}

func NewTransactionService(
	transactions repository.TransactionRepository,
	students repository.StudentRepository,
	oracle advisor.Oracle,
	config *config.Config,
	log *logger.Logger,
) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		students:     students,
		oracle:       oracle,
		config:       config,
		log:          log.WithComponent(logger.ComponentService),
		now:          time.Now,
	}
}

// Create records a transaction. Without a category the advisor picks one; when it cannot,
// the transaction lands in the default category.
func (s *TransactionService) Create(ctx context.Context, req *domain.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := ensureStudent(ctx, s.students, req.StudentID); err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		ID:           uuid.New(),
		StudentID:    req.StudentID,
		Amount:       req.Amount,
		Category:     utils.NormalizeCategory(req.Category),
		Description:  req.Description,
		MerchantName: req.MerchantName,
		Date:         s.now(),
	}
	if req.Date != nil {
		tx.Date = *req.Date
	}

	if tx.Category == "" {
		tx.Category = s.categorize(ctx, deref(req.Description), deref(req.MerchantName))
		tx.IsAutoCategorized = true
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return tx, nil
}

func (s *TransactionService) categorize(ctx context.Context, description, merchant string) string {
	category, err := s.oracle.CategorizeTransaction(ctx, description, merchant)
	if err != nil {
		s.log.WarnContext(ctx, "Categorization unavailable, using default category",
			logger.FieldOperation, "categorize_transaction",
			logger.FieldError, err)
		return advisor.FallbackCategory
	}

	category = utils.NormalizeCategory(category)
	if category == "" {
		return advisor.FallbackCategory
	}
	return category
}

func (s *TransactionService) List(ctx context.Context, studentID uuid.UUID) ([]*domain.Transaction, error) {
	transactions, err := s.transactions.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return transactions, nil
}

func (s *TransactionService) ListByCategory(ctx context.Context, studentID uuid.UUID, category string) ([]*domain.Transaction, error) {
	transactions, err := s.transactions.ListByCategory(ctx, studentID, utils.NormalizeCategory(category))
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return transactions, nil
}

// ListForMonth returns the transactions dated within a calendar month in the configured timezone
func (s *TransactionService) ListForMonth(ctx context.Context, studentID uuid.UUID, year, month int) ([]*domain.Transaction, error) {
	start, end := utils.MonthBounds(year, month, s.config.GetLocation())

	transactions, err := s.transactions.ListBetween(ctx, studentID, start, end)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return transactions, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
