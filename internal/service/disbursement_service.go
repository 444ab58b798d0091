package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/segyhp/helbflow/internal/advisor"
	"github.com/segyhp/helbflow/internal/cache"
	"github.com/segyhp/helbflow/internal/config"
	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/repository"
	customError "github.com/segyhp/helbflow/pkg/errors"
)

type DisbursementService struct {
	disbursements repository.DisbursementRepository
	students      repository.StudentRepository
	oracle        advisor.Oracle
	cache         cache.Cache
	config        *config.Config
	log           *logger.Logger
	now           func() time.Time
}

func NewDisbursementService(
	disbursements repository.DisbursementRepository,
	students repository.StudentRepository,
	oracle advisor.Oracle,
	cache cache.Cache,
	config *config.Config,
	log *logger.Logger,
) *DisbursementService {
	return &DisbursementService{
		disbursements: disbursements,
		students:      students,
		oracle:        oracle,
		cache:         cache,
		config:        config,
		log:           log.WithComponent(logger.ComponentService),
		now:           time.Now,
	}
}

// Calculate asks the advisor for a disbursement breakdown, falling back to average costs
func (s *DisbursementService) Calculate(ctx context.Context, req *domain.DisbursementCalculationRequest) *domain.DisbursementCalculation {
	calc, err := s.oracle.SuggestDisbursement(ctx, *req)
	if err != nil {
		s.log.WarnContext(ctx, "Disbursement suggestion unavailable, using defaults",
			logger.FieldOperation, "suggest_disbursement",
			logger.FieldError, err)
		return advisor.FallbackDisbursement()
	}
	return calc
}

func (s *DisbursementService) Create(ctx context.Context, req *domain.CreateDisbursementRequest) (*domain.Disbursement, error) {
	if err := ensureStudent(ctx, s.students, req.StudentID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.DisbursementStatusPending
	}
	if !domain.IsValidDisbursementStatus(status) {
		return nil, customError.WrapInvalidStatus("disbursement", status)
	}

	now := s.now()
	disbursement := &domain.Disbursement{
		ID:               uuid.New(),
		StudentID:        req.StudentID,
		Type:             req.Type,
		Amount:           req.Amount,
		Status:           status,
		Recipient:        req.Recipient,
		AIRecommendation: req.AIRecommendation,
		CreatedAt:        now,
	}
	if status == domain.DisbursementStatusCompleted {
		disbursement.ProcessedAt = &now
	}

	if err := s.disbursements.Create(ctx, disbursement); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if status == domain.DisbursementStatusCompleted {
		s.invalidateStats(ctx)
	}
	return disbursement, nil
}

// List returns disbursements, optionally restricted to one student
func (s *DisbursementService) List(ctx context.Context, studentID *uuid.UUID) ([]*domain.Disbursement, error) {
	disbursements, err := s.disbursements.List(ctx, studentID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return disbursements, nil
}

// ListRecent returns the latest disbursements with their students. A non-positive limit uses the configured default.
func (s *DisbursementService) ListRecent(ctx context.Context, limit int) ([]*domain.DisbursementWithStudent, error) {
	if limit <= 0 {
		limit = s.config.Business.RecentDisbursementsLimit
	}

	disbursements, err := s.disbursements.ListRecent(ctx, limit)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return disbursements, nil
}

// UpdateStatus moves a disbursement to status. Completing a disbursement stamps its processed time.
func (s *DisbursementService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Disbursement, error) {
	if !domain.IsValidDisbursementStatus(status) {
		return nil, customError.WrapInvalidStatus("disbursement", status)
	}

	var processedAt *time.Time
	if status == domain.DisbursementStatusCompleted {
		now := s.now()
		processedAt = &now
	}

	disbursement, err := s.disbursements.UpdateStatus(ctx, id, status, processedAt)
	if err != nil {
		return nil, storeError(err, customError.WrapDisbursementNotFound(id.String()))
	}

	s.invalidateStats(ctx)
	return disbursement, nil
}

func (s *DisbursementService) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.StatsKey()); err != nil {
		s.log.WarnContext(ctx, "Failed to invalidate dashboard stats", logger.FieldError, err)
	}
}
