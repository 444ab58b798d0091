package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/helbflow/internal/cache"
	"github.com/segyhp/helbflow/internal/config"
	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/engine"
	"github.com/segyhp/helbflow/internal/events"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/repository"
	customError "github.com/segyhp/helbflow/pkg/errors"
)

type LoanService struct {
	loans     repository.LoanRepository
	students  repository.StudentRepository
	cache     cache.Cache
	publisher events.Publisher
	engine    *engine.AmortizationEngine
	config    *config.Config
	log       *logger.Logger
	now       func() time.Time
}

func NewLoanService(
	loans repository.LoanRepository,
	students repository.StudentRepository,
	cache cache.Cache,
	publisher events.Publisher,
	config *config.Config,
	log *logger.Logger,
) *LoanService {
	return &LoanService{
		loans:     loans,
		students:  students,
		cache:     cache,
		publisher: publisher,
		engine:    engine.NewAmortizationEngine(),
		config:    config,
		log:       log.WithComponent(logger.ComponentService),
		now:       time.Now,
	}
}

func (s *LoanService) Create(ctx context.Context, req *domain.CreateLoanRequest) (*domain.Loan, error) {
	if err := ensureStudent(ctx, s.students, req.StudentID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.LoanStatusActive
	}

	outstanding := req.TotalAmount
	if req.OutstandingAmount.Valid {
		outstanding = req.OutstandingAmount.Decimal
	}

	now := s.now()
	loan := &domain.Loan{
		ID:                 uuid.New(),
		StudentID:          req.StudentID,
		TotalAmount:        req.TotalAmount,
		OutstandingAmount:  outstanding,
		InterestRate:       req.InterestRate,
		Status:             status,
		GraduationDate:     req.GraduationDate,
		RepaymentStartDate: req.RepaymentStartDate,
		MonthlyRepayment:   req.MonthlyRepayment,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.loans.Create(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateStats(ctx)
	s.log.InfoContext(ctx, "Loan created", logger.FieldLoanID, loan.ID, logger.FieldStudentID, loan.StudentID)
	return loan, nil
}

// GetByStudent returns the student's most recent loan
func (s *LoanService) GetByStudent(ctx context.Context, studentID uuid.UUID) (*domain.Loan, error) {
	loan, err := s.loans.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, storeError(err, customError.WrapLoanNotFound(studentID.String()))
	}
	return loan, nil
}

func (s *LoanService) ListActive(ctx context.Context) ([]*domain.Loan, error) {
	loans, err := s.loans.ListActive(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return loans, nil
}

// Schedule generates the repayment schedule of a student's loan from its outstanding balance.
// Generated schedules are cached until the loan changes.
func (s *LoanService) Schedule(ctx context.Context, studentID uuid.UUID) (*domain.ScheduleResponse, error) {
	loan, err := s.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	key := cache.ScheduleKey(loan.ID, loan.UpdatedAt)

	var cached domain.ScheduleResponse
	err = s.cache.Get(ctx, key, &cached)
	if err == nil && cached.RepaymentSchedule != nil {
		return &cached, nil
	}
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		s.log.WarnContext(ctx, "Schedule cache read failed", logger.FieldLoanID, loan.ID, logger.FieldError, err)
	}

	schedule, err := s.generate(loan)
	if err != nil {
		return nil, err
	}

	response := &domain.ScheduleResponse{
		LoanID:            loan.ID,
		StudentID:         loan.StudentID,
		RepaymentSchedule: schedule,
	}

	if err := s.cache.Set(ctx, key, response, s.config.GetScheduleTTL()); err != nil {
		s.log.WarnContext(ctx, "Schedule cache write failed", logger.FieldLoanID, loan.ID, logger.FieldError, err)
	}

	return response, nil
}

func (s *LoanService) generate(loan *domain.Loan) (*domain.RepaymentSchedule, error) {
	terms, err := loan.Terms()
	if err != nil {
		return nil, err
	}
	return s.engine.GenerateSchedule(terms)
}

// Calculate builds a schedule for ad-hoc terms. Without a monthly payment the payment is
// derived from the requested number of months.
func (s *LoanService) Calculate(ctx context.Context, req *domain.LoanCalculatorRequest) (*domain.LoanCalculation, error) {
	var payment decimal.Decimal
	switch {
	case req.MonthlyPayment.Valid:
		payment = req.MonthlyPayment.Decimal
	case req.Months > 0:
		derived, err := s.engine.MonthlyPaymentFor(req.Principal, req.InterestRate, req.Months)
		if err != nil {
			return nil, err
		}
		payment = derived
	default:
		return nil, customError.WrapInvalidLoanTerms("either monthly payment or months is required")
	}

	start := s.firstOfNextMonth()
	if req.RepaymentStartDate != nil {
		start = *req.RepaymentStartDate
	}

	schedule, err := s.engine.GenerateSchedule(domain.LoanTerms{
		Principal:                 req.Principal,
		AnnualInterestRatePercent: req.InterestRate,
		MonthlyPayment:            payment,
		RepaymentStartDate:        start,
	})
	if err != nil {
		return nil, err
	}

	return &domain.LoanCalculation{MonthlyPayment: payment, RepaymentSchedule: schedule}, nil
}

func (s *LoanService) firstOfNextMonth() time.Time {
	now := s.now().In(s.config.GetLocation())
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
}

// Summary reports the repayment position of a student's loan. The payoff projection is
// left empty when the loan has no usable repayment terms.
func (s *LoanService) Summary(ctx context.Context, studentID uuid.UUID) (*domain.LoanSummary, error) {
	loan, err := s.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	repayments, err := s.loans.ListRepayments(ctx, loan.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	summary := &domain.LoanSummary{
		LoanID:            loan.ID,
		StudentID:         loan.StudentID,
		TotalAmount:       loan.TotalAmount,
		OutstandingAmount: loan.OutstandingAmount,
		TotalRepaid:       decimal.Zero,
		MonthlyRepayment:  loan.MonthlyRepayment,
	}

	for _, repayment := range repayments {
		switch repayment.Status {
		case domain.RepaymentStatusCompleted:
			summary.TotalRepaid = summary.TotalRepaid.Add(repayment.Amount)
		case domain.RepaymentStatusPending:
			if summary.NextDue == nil || repayment.DueDate.Before(summary.NextDue.DueDate) {
				summary.NextDue = repayment
			}
		}
	}

	if !loan.OutstandingAmount.IsPositive() {
		return summary, nil
	}

	schedule, err := s.generate(loan)
	if err != nil {
		if customError.CodeOf(err) == "" {
			return nil, err
		}
		s.log.DebugContext(ctx, "No payoff projection for loan", logger.FieldLoanID, loan.ID, logger.FieldError, err)
		return summary, nil
	}

	summary.RemainingMonths = len(schedule.Entries)
	summary.Incomplete = schedule.Incomplete
	if last := schedule.Last(); last != nil && !schedule.Incomplete {
		payoff := last.DueDate
		summary.PayoffDate = &payoff
	}

	return summary, nil
}

// CreateRepayment records a repayment against a loan. A repayment created as completed
// reduces the loan's outstanding balance immediately.
func (s *LoanService) CreateRepayment(ctx context.Context, req *domain.CreateRepaymentRequest) (*domain.Repayment, error) {
	loan, err := s.loans.GetByID(ctx, req.LoanID)
	if err != nil {
		return nil, storeError(err, customError.WrapLoanIDNotFound(req.LoanID.String()))
	}

	status := req.Status
	if status == "" {
		status = domain.RepaymentStatusPending
	}

	now := s.now()
	repayment := &domain.Repayment{
		ID:            uuid.New(),
		LoanID:        req.LoanID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        status,
		DueDate:       req.DueDate,
		CreatedAt:     now,
	}
	if status == domain.RepaymentStatusCompleted {
		repayment.PaidDate = &now
	}

	if err := s.loans.CreateRepayment(ctx, repayment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if status == domain.RepaymentStatusCompleted {
		if err := s.applyRepayment(ctx, loan, repayment.Amount); err != nil {
			return nil, err
		}
	}

	s.invalidateStats(ctx)
	return repayment, nil
}

func (s *LoanService) ListRepayments(ctx context.Context, loanID uuid.UUID) ([]*domain.Repayment, error) {
	repayments, err := s.loans.ListRepayments(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return repayments, nil
}

// UpdateRepaymentStatus moves a repayment to status. Completion stamps the paid date and is
// applied to the loan balance once; a completed repayment cannot move to another status.
func (s *LoanService) UpdateRepaymentStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Repayment, error) {
	if !domain.IsValidRepaymentStatus(status) {
		return nil, customError.WrapInvalidStatus("repayment", status)
	}

	current, err := s.loans.GetRepayment(ctx, id)
	if err != nil {
		return nil, storeError(err, customError.WrapRepaymentNotFound(id.String()))
	}

	if current.Status == domain.RepaymentStatusCompleted && status != domain.RepaymentStatusCompleted {
		return nil, customError.WrapInvalidTransition("repayment", current.Status, status)
	}

	completing := status == domain.RepaymentStatusCompleted && current.Status != domain.RepaymentStatusCompleted

	var paidDate *time.Time
	if completing {
		now := s.now()
		paidDate = &now
	}

	repayment, err := s.loans.UpdateRepaymentStatus(ctx, id, status, paidDate)
	if err != nil {
		return nil, storeError(err, customError.WrapRepaymentNotFound(id.String()))
	}

	if completing {
		loan, err := s.loans.GetByID(ctx, repayment.LoanID)
		if err != nil {
			return nil, storeError(err, customError.WrapLoanIDNotFound(repayment.LoanID.String()))
		}
		if err := s.applyRepayment(ctx, loan, repayment.Amount); err != nil {
			return nil, err
		}
	}

	s.invalidateStats(ctx)
	return repayment, nil
}

// applyRepayment lowers the outstanding balance, marking the loan paid once it reaches zero
func (s *LoanService) applyRepayment(ctx context.Context, loan *domain.Loan, amount decimal.Decimal) error {
	loan.OutstandingAmount = decimal.Max(loan.OutstandingAmount.Sub(amount), decimal.Zero)
	if loan.OutstandingAmount.IsZero() {
		loan.Status = domain.LoanStatusPaid
	}

	if err := s.loans.Update(ctx, loan); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// Upcoming returns pending repayments soonest first. A non-positive limit uses the configured default.
func (s *LoanService) Upcoming(ctx context.Context, limit int) ([]*domain.UpcomingRepayment, error) {
	if limit <= 0 {
		limit = s.config.Business.UpcomingRepaymentsLimit
	}

	repayments, err := s.loans.ListUpcomingRepayments(ctx, limit)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return repayments, nil
}

// MarkOverdue fails every pending repayment due before asOf and announces each one.
// It returns the number of repayments marked.
func (s *LoanService) MarkOverdue(ctx context.Context, asOf time.Time) (int, error) {
	overdue, err := s.loans.ListOverdueRepayments(ctx, asOf)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	marked := 0
	for _, repayment := range overdue {
		updated, err := s.loans.UpdateRepaymentStatus(ctx, repayment.ID, domain.RepaymentStatusFailed, nil)
		if err != nil {
			return marked, customError.WrapDatabaseError(err)
		}
		marked++

		if err := s.publisher.Publish(ctx, events.NewRepaymentOverdueMessage(updated)); err != nil {
			s.log.LogError(ctx, "Failed to publish overdue repayment", err, "mark_overdue",
				logger.FieldLoanID, updated.LoanID)
		}
	}

	if marked > 0 {
		s.invalidateStats(ctx)
	}
	return marked, nil
}

func (s *LoanService) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.StatsKey()); err != nil {
		s.log.WarnContext(ctx, "Failed to invalidate dashboard stats", logger.FieldError, err)
	}
}
