package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/helbflow/internal/domain"
)

const transactionColumns = `id, student_id, amount, category, description, date, merchant_name, is_auto_categorized`

type transactionRepository struct {
	db *sqlx.DB
}

func NewTransactionRepository(db *sqlx.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := r.db.Rebind(`
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.StudentID,
		tx.Amount,
		tx.Category,
		tx.Description,
		tx.Date.UTC(),
		tx.MerchantName,
		tx.IsAutoCategorized,
	)

	return err
}

func (r *transactionRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.Transaction, error) {
	query := r.db.Rebind(`
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE student_id = ?
		ORDER BY date DESC
	`)

	transactions := []*domain.Transaction{}
	if err := r.db.SelectContext(ctx, &transactions, query, studentID); err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *transactionRepository) ListByCategory(ctx context.Context, studentID uuid.UUID, category string) ([]*domain.Transaction, error) {
	query := r.db.Rebind(`
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE student_id = ? AND LOWER(TRIM(category)) = ?
		ORDER BY date DESC
	`)

	transactions := []*domain.Transaction{}
	if err := r.db.SelectContext(ctx, &transactions, query, studentID, category); err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *transactionRepository) ListBetween(ctx context.Context, studentID uuid.UUID, start, end time.Time) ([]*domain.Transaction, error) {
	query := r.db.Rebind(`
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE student_id = ? AND date >= ? AND date < ?
		ORDER BY date DESC
	`)

	transactions := []*domain.Transaction{}
	if err := r.db.SelectContext(ctx, &transactions, query, studentID, start.UTC(), end.UTC()); err != nil {
		return nil, err
	}

	return transactions, nil
}
