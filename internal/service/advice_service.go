package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/helbflow/internal/advisor"
	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/repository"
	customError "github.com/segyhp/helbflow/pkg/errors"
	"github.com/segyhp/helbflow/pkg/utils"
)

type AdviceService struct {
	advice       repository.AdviceRepository
	transactions repository.TransactionRepository
	students     repository.StudentRepository
	oracle       advisor.Oracle
	log          *logger.Logger
	now          func() time.Time
}

func NewAdviceService(
	advice repository.AdviceRepository,
	transactions repository.TransactionRepository,
	students repository.StudentRepository,
	oracle advisor.Oracle,
	log *logger.Logger,
) *AdviceService {
	return &AdviceService{
		advice:       advice,
		transactions: transactions,
		students:     students,
		oracle:       oracle,
		log:          log.WithComponent(logger.ComponentService),
		now:          time.Now,
	}
}

func (s *AdviceService) List(ctx context.Context, studentID uuid.UUID) ([]*domain.Advice, error) {
	advice, err := s.advice.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return advice, nil
}

func (s *AdviceService) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Advice, error) {
	advice, err := s.advice.MarkRead(ctx, id)
	if err != nil {
		return nil, storeError(err, customError.WrapAdviceNotFound(id.String()))
	}
	return advice, nil
}

// GenerateTip stores a financial tip drawn from the student's spend per category
func (s *AdviceService) GenerateTip(ctx context.Context, studentID uuid.UUID) (*domain.Advice, error) {
	if err := ensureStudent(ctx, s.students, studentID); err != nil {
		return nil, err
	}

	transactions, err := s.transactions.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	tip, err := s.oracle.FinancialTip(ctx, spendingPattern(transactions))
	if err != nil || tip == "" {
		s.log.WarnContext(ctx, "Financial tip unavailable, using default tip",
			logger.FieldOperation, "financial_tip",
			logger.FieldStudentID, studentID,
			logger.FieldError, err)
		tip = advisor.FallbackTip
	}

	advice := &domain.Advice{
		ID:        uuid.New(),
		StudentID: studentID,
		Type:      domain.AdviceTypeFinancialTip,
		Message:   tip,
		CreatedAt: s.now(),
	}
	if err := s.advice.Create(ctx, advice); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return advice, nil
}

func spendingPattern(transactions []*domain.Transaction) advisor.SpendingPattern {
	pattern := make(advisor.SpendingPattern)
	for _, tx := range transactions {
		category := utils.NormalizeCategory(tx.Category)
		current, ok := pattern[category]
		if !ok {
			current = decimal.Zero
		}
		pattern[category] = current.Add(tx.Amount)
	}
	return pattern
}
