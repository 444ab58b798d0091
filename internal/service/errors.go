package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/segyhp/helbflow/internal/repository"
	customError "github.com/segyhp/helbflow/pkg/errors"
)

// storeError maps a missing row to notFound and anything else to a database error
func storeError(err error, notFound *customError.BusinessError) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return customError.WrapDatabaseError(err)
}

// ensureStudent fails with StudentNotFound when id does not exist
func ensureStudent(ctx context.Context, students repository.StudentRepository, id uuid.UUID) error {
	if _, err := students.GetByID(ctx, id); err != nil {
		return storeError(err, customError.WrapStudentNotFound(id.String()))
	}
	return nil
}
