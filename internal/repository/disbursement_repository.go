package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/helbflow/internal/domain"
)

const disbursementColumns = `id, student_id, type, amount, status, recipient, ai_recommendation, processed_at, created_at`

type disbursementRepository struct {
	db *sqlx.DB
}

func NewDisbursementRepository(db *sqlx.DB) DisbursementRepository {
	return &disbursementRepository{db: db}
}

func (r *disbursementRepository) Create(ctx context.Context, disbursement *domain.Disbursement) error {
	query := r.db.Rebind(`
		INSERT INTO disbursements (` + disbursementColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		disbursement.ID,
		disbursement.StudentID,
		disbursement.Type,
		disbursement.Amount,
		disbursement.Status,
		disbursement.Recipient,
		disbursement.AIRecommendation,
		disbursement.ProcessedAt,
		disbursement.CreatedAt.UTC(),
	)

	return err
}

func (r *disbursementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Disbursement, error) {
	query := r.db.Rebind(`SELECT ` + disbursementColumns + ` FROM disbursements WHERE id = ?`)

	var disbursement domain.Disbursement
	if err := r.db.GetContext(ctx, &disbursement, query, id); err != nil {
		return nil, err
	}

	return &disbursement, nil
}

func (r *disbursementRepository) List(ctx context.Context, studentID *uuid.UUID) ([]*domain.Disbursement, error) {
	query := `SELECT ` + disbursementColumns + ` FROM disbursements`
	args := []any{}
	if studentID != nil {
		query += ` WHERE student_id = ?`
		args = append(args, *studentID)
	}
	query += ` ORDER BY created_at DESC`

	disbursements := []*domain.Disbursement{}
	if err := r.db.SelectContext(ctx, &disbursements, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	return disbursements, nil
}

func (r *disbursementRepository) ListRecent(ctx context.Context, limit int) ([]*domain.DisbursementWithStudent, error) {
	query := r.db.Rebind(`
		SELECT d.id, d.student_id, d.type, d.amount, d.status, d.recipient, d.ai_recommendation,
			d.processed_at, d.created_at,
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
		FROM disbursements d
		JOIN students s ON s.id = d.student_id
		ORDER BY d.created_at DESC
		LIMIT ?
	`)

	disbursements := []*domain.DisbursementWithStudent{}
	if err := r.db.SelectContext(ctx, &disbursements, query, limit); err != nil {
		return nil, err
	}

	return disbursements, nil
}

func (r *disbursementRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, processedAt *time.Time) (*domain.Disbursement, error) {
	query := r.db.Rebind(`
		UPDATE disbursements
		SET status = ?, processed_at = COALESCE(?, processed_at)
		WHERE id = ?
	`)

	result, err := r.db.ExecContext(ctx, query, status, processedAt, id)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(result); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}
