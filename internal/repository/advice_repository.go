package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/helbflow/internal/domain"
)

const adviceColumns = `id, student_id, type, message, category, is_read, created_at`

type adviceRepository struct {
	db *sqlx.DB
}

func NewAdviceRepository(db *sqlx.DB) AdviceRepository {
	return &adviceRepository{db: db}
}

func (r *adviceRepository) Create(ctx context.Context, advice *domain.Advice) error {
	query := r.db.Rebind(`
		INSERT INTO ai_advice (` + adviceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		advice.ID,
		advice.StudentID,
		advice.Type,
		advice.Message,
		advice.Category,
		advice.IsRead,
		advice.CreatedAt.UTC(),
	)

	return err
}

func (r *adviceRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.Advice, error) {
	query := r.db.Rebind(`
		SELECT ` + adviceColumns + `
		FROM ai_advice
		WHERE student_id = ?
		ORDER BY created_at DESC
	`)

	advice := []*domain.Advice{}
	if err := r.db.SelectContext(ctx, &advice, query, studentID); err != nil {
		return nil, err
	}

	return advice, nil
}

func (r *adviceRepository) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Advice, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE ai_advice SET is_read = ? WHERE id = ?`), true, id)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(result); err != nil {
		return nil, err
	}

	var advice domain.Advice
	query := r.db.Rebind(`SELECT ` + adviceColumns + ` FROM ai_advice WHERE id = ?`)
	if err := r.db.GetContext(ctx, &advice, query, id); err != nil {
		return nil, err
	}

	return &advice, nil
}

func (r *adviceRepository) HasAlert(ctx context.Context, studentID uuid.UUID, category string, start, end time.Time) (bool, error) {
	query := r.db.Rebind(`
		SELECT EXISTS (
			SELECT 1 FROM ai_advice
			WHERE student_id = ? AND type = ? AND category = ? AND created_at >= ? AND created_at < ?
		)
	`)

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, studentID, domain.AdviceTypeOverspending, category, start.UTC(), end.UTC()); err != nil {
		return false, err
	}

	return exists, nil
}
