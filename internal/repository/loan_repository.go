package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/helbflow/internal/domain"
)

const (
	loanColumns = `id, student_id, total_amount, outstanding_amount, interest_rate, status, graduation_date,
		repayment_start_date, monthly_repayment, created_at, updated_at`
	repaymentColumns = `id, loan_id, amount, payment_method, status, due_date, paid_date, created_at`
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := r.db.Rebind(`
		INSERT INTO loans (` + loanColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.StudentID,
		loan.TotalAmount,
		loan.OutstandingAmount,
		loan.InterestRate,
		loan.Status,
		loan.GraduationDate,
		loan.RepaymentStartDate,
		loan.MonthlyRepayment,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	query := r.db.Rebind(`SELECT ` + loanColumns + ` FROM loans WHERE id = ?`)

	var loan domain.Loan
	if err := r.db.GetContext(ctx, &loan, query, id); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) GetByStudentID(ctx context.Context, studentID uuid.UUID) (*domain.Loan, error) {
	query := r.db.Rebind(`
		SELECT ` + loanColumns + `
		FROM loans
		WHERE student_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`)

	var loan domain.Loan
	if err := r.db.GetContext(ctx, &loan, query, studentID); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	query := r.db.Rebind(`
		UPDATE loans
		SET total_amount = ?, outstanding_amount = ?, interest_rate = ?, status = ?, graduation_date = ?,
			repayment_start_date = ?, monthly_repayment = ?, updated_at = ?
		WHERE id = ?
	`)

	loan.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, query,
		loan.TotalAmount,
		loan.OutstandingAmount,
		loan.InterestRate,
		loan.Status,
		loan.GraduationDate,
		loan.RepaymentStartDate,
		loan.MonthlyRepayment,
		loan.UpdatedAt,
		loan.ID,
	)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

func (r *loanRepository) ListActive(ctx context.Context) ([]*domain.Loan, error) {
	query := r.db.Rebind(`
		SELECT ` + loanColumns + `
		FROM loans
		WHERE status = ?
		ORDER BY created_at DESC
	`)

	loans := []*domain.Loan{}
	if err := r.db.SelectContext(ctx, &loans, query, domain.LoanStatusActive); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) CreateRepayment(ctx context.Context, repayment *domain.Repayment) error {
	query := r.db.Rebind(`
		INSERT INTO repayments (` + repaymentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		repayment.ID,
		repayment.LoanID,
		repayment.Amount,
		repayment.PaymentMethod,
		repayment.Status,
		repayment.DueDate.UTC(),
		repayment.PaidDate,
		repayment.CreatedAt,
	)

	return err
}

func (r *loanRepository) GetRepayment(ctx context.Context, id uuid.UUID) (*domain.Repayment, error) {
	query := r.db.Rebind(`SELECT ` + repaymentColumns + ` FROM repayments WHERE id = ?`)

	var repayment domain.Repayment
	if err := r.db.GetContext(ctx, &repayment, query, id); err != nil {
		return nil, err
	}

	return &repayment, nil
}

func (r *loanRepository) ListRepayments(ctx context.Context, loanID uuid.UUID) ([]*domain.Repayment, error) {
	query := r.db.Rebind(`
		SELECT ` + repaymentColumns + `
		FROM repayments
		WHERE loan_id = ?
		ORDER BY due_date DESC
	`)

	repayments := []*domain.Repayment{}
	if err := r.db.SelectContext(ctx, &repayments, query, loanID); err != nil {
		return nil, err
	}

	return repayments, nil
}

func (r *loanRepository) UpdateRepaymentStatus(ctx context.Context, id uuid.UUID, status string, paidDate *time.Time) (*domain.Repayment, error) {
	query := r.db.Rebind(`
		UPDATE repayments
		SET status = ?, paid_date = COALESCE(?, paid_date)
		WHERE id = ?
	`)

	result, err := r.db.ExecContext(ctx, query, status, paidDate, id)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(result); err != nil {
		return nil, err
	}

	return r.GetRepayment(ctx, id)
}

func (r *loanRepository) ListUpcomingRepayments(ctx context.Context, limit int) ([]*domain.UpcomingRepayment, error) {
	query := r.db.Rebind(`
		SELECT r.id, r.loan_id, r.amount, r.payment_method, r.status, r.due_date, r.paid_date, r.created_at,
			l.id AS "loan.id",
			l.student_id AS "loan.student_id",
			l.total_amount AS "loan.total_amount",
			l.outstanding_amount AS "loan.outstanding_amount",
			l.interest_rate AS "loan.interest_rate",
			l.status AS "loan.status",
			l.graduation_date AS "loan.graduation_date",
			l.repayment_start_date AS "loan.repayment_start_date",
			l.monthly_repayment AS "loan.monthly_repayment",
			l.created_at AS "loan.created_at",
			l.updated_at AS "loan.updated_at",
			s.id AS "student.id",
			s.student_number AS "student.student_number",
			s.first_name AS "student.first_name",
			s.last_name AS "student.last_name",
			s.course AS "student.course",
			s.institution AS "student.institution",
			s.region AS "student.region",
			s.year AS "student.year",
			s.semester AS "student.semester",
			s.account_number AS "student.account_number",
			s.bank_name AS "student.bank_name",
			s.created_at AS "student.created_at"
		FROM repayments r
		JOIN loans l ON l.id = r.loan_id
		JOIN students s ON s.id = l.student_id
		WHERE r.status = ?
		ORDER BY r.due_date
		LIMIT ?
	`)

	upcoming := []*domain.UpcomingRepayment{}
	if err := r.db.SelectContext(ctx, &upcoming, query, domain.RepaymentStatusPending, limit); err != nil {
		return nil, err
	}

	return upcoming, nil
}

func (r *loanRepository) ListOverdueRepayments(ctx context.Context, asOf time.Time) ([]*domain.Repayment, error) {
	query := r.db.Rebind(`
		SELECT ` + repaymentColumns + `
		FROM repayments
		WHERE status = ? AND due_date < ?
		ORDER BY due_date
	`)

	repayments := []*domain.Repayment{}
	if err := r.db.SelectContext(ctx, &repayments, query, domain.RepaymentStatusPending, asOf.UTC()); err != nil {
		return nil, err
	}

	return repayments, nil
}
