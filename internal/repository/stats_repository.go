package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/segyhp/helbflow/internal/domain"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountStudents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM students`)
	return count, err
}

func (r *statsRepository) TotalActiveOutstanding(ctx context.Context) (decimal.Decimal, error) {
	query := r.db.Rebind(`SELECT COALESCE(SUM(outstanding_amount), 0) FROM loans WHERE status = ?`)

	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query, domain.LoanStatusActive); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

func (r *statsRepository) CompletedDisbursementsBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := r.db.Rebind(`
		SELECT COALESCE(SUM(amount), 0)
		FROM disbursements
		WHERE status = ? AND created_at >= ? AND created_at < ?
	`)

	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query, domain.DisbursementStatusCompleted, start.UTC(), end.UTC()); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

func (r *statsRepository) RepaymentCounts(ctx context.Context) (int64, int64, error) {
	query := r.db.Rebind(`
		SELECT COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed
		FROM repayments
	`)

	var counts struct {
		Total     int64 `db:"total"`
		Completed int64 `db:"completed"`
	}
	if err := r.db.GetContext(ctx, &counts, query, domain.RepaymentStatusCompleted); err != nil {
		return 0, 0, err
	}

	return counts.Total, counts.Completed, nil
}
