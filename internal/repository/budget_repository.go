package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/segyhp/helbflow/internal/domain"
)

const budgetColumns = `id, student_id, category, budget_amount, spent_amount, month, year, alert_threshold, created_at`

type budgetRepository struct {
	db *sqlx.DB
}

func NewBudgetRepository(db *sqlx.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	query := r.db.Rebind(`
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		budget.ID,
		budget.StudentID,
		budget.Category,
		budget.BudgetAmount,
		budget.SpentAmount,
		budget.Month,
		budget.Year,
		budget.AlertThreshold,
		budget.CreatedAt,
	)

	return err
}

func (r *budgetRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.Budget, error) {
	query := r.db.Rebind(`
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE student_id = ?
		ORDER BY year DESC, month DESC, category
	`)

	budgets := []*domain.Budget{}
	if err := r.db.SelectContext(ctx, &budgets, query, studentID); err != nil {
		return nil, err
	}

	return budgets, nil
}

func (r *budgetRepository) ListForMonth(ctx context.Context, studentID uuid.UUID, year, month int) ([]*domain.Budget, error) {
	query := r.db.Rebind(`
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE student_id = ? AND year = ? AND month = ?
		ORDER BY category
	`)

	budgets := []*domain.Budget{}
	if err := r.db.SelectContext(ctx, &budgets, query, studentID, year, month); err != nil {
		return nil, err
	}

	return budgets, nil
}

func (r *budgetRepository) ListStudentsWithBudgets(ctx context.Context, year, month int) ([]uuid.UUID, error) {
	query := r.db.Rebind(`
		SELECT DISTINCT student_id
		FROM budgets
		WHERE year = ? AND month = ?
		ORDER BY student_id
	`)

	ids := []uuid.UUID{}
	if err := r.db.SelectContext(ctx, &ids, query, year, month); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *budgetRepository) UpdateSpent(ctx context.Context, id uuid.UUID, spent decimal.Decimal) error {
	query := r.db.Rebind(`UPDATE budgets SET spent_amount = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, spent, id)
	if err != nil {
		return err
	}

	return requireAffected(result)
}
