package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/helbflow/internal/domain"
)

const studentColumns = `id, student_number, first_name, last_name, course, institution, region, year, semester,
		account_number, bank_name, created_at`

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	query := r.db.Rebind(`
		INSERT INTO students (` + studentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		student.ID,
		student.StudentNumber,
		student.FirstName,
		student.LastName,
		student.Course,
		student.Institution,
		student.Region,
		student.Year,
		student.Semester,
		student.AccountNumber,
		student.BankName,
		student.CreatedAt,
	)

	return err
}

func (r *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	query := r.db.Rebind(`SELECT ` + studentColumns + ` FROM students WHERE id = ?`)

	var student domain.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}

	return &student, nil
}

func (r *studentRepository) GetByStudentNumber(ctx context.Context, studentNumber string) (*domain.Student, error) {
	query := r.db.Rebind(`SELECT ` + studentColumns + ` FROM students WHERE student_number = ?`)

	var student domain.Student
	if err := r.db.GetContext(ctx, &student, query, studentNumber); err != nil {
		return nil, err
	}

	return &student, nil
}

func (r *studentRepository) List(ctx context.Context) ([]*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY created_at DESC`

	students := []*domain.Student{}
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) Update(ctx context.Context, student *domain.Student) error {
	query := r.db.Rebind(`
		UPDATE students
		SET first_name = ?, last_name = ?, course = ?, institution = ?, region = ?, year = ?, semester = ?,
			account_number = ?, bank_name = ?
		WHERE id = ?
	`)

	result, err := r.db.ExecContext(ctx, query,
		student.FirstName,
		student.LastName,
		student.Course,
		student.Institution,
		student.Region,
		student.Year,
		student.Semester,
		student.AccountNumber,
		student.BankName,
		student.ID,
	)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

// requireAffected turns an update that touched no row into sql.ErrNoRows
func requireAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
