package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/repository"
	customError "github.com/segyhp/helbflow/pkg/errors"
)

type StudentService struct {
	students repository.StudentRepository
	log      *logger.Logger
	now      func() time.Time
}

func NewStudentService(students repository.StudentRepository, log *logger.Logger) *StudentService {
	return &StudentService{
		students: students,
		log:      log.WithComponent(logger.ComponentService),
		now:      time.Now,
	}
}

// Create registers a student. Student numbers are unique.
func (s *StudentService) Create(ctx context.Context, req *domain.CreateStudentRequest) (*domain.Student, error) {
	studentNumber := strings.TrimSpace(req.StudentNumber)

	existing, err := s.students.GetByStudentNumber(ctx, studentNumber)
	if err == nil && existing != nil {
		return nil, customError.WrapStudentAlreadyExists(studentNumber)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	student := &domain.Student{
		ID:            uuid.New(),
		StudentNumber: studentNumber,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Course:        req.Course,
		Institution:   req.Institution,
		Region:        req.Region,
		Year:          req.Year,
		Semester:      req.Semester,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		CreatedAt:     s.now(),
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.InfoContext(ctx, "Student created", logger.FieldStudentID, student.ID)
	return student, nil
}

func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, customError.WrapStudentNotFound(id.String()))
	}
	return student, nil
}

func (s *StudentService) GetByStudentNumber(ctx context.Context, studentNumber string) (*domain.Student, error) {
	student, err := s.students.GetByStudentNumber(ctx, studentNumber)
	if err != nil {
		return nil, storeError(err, customError.WrapStudentNotFound(studentNumber))
	}
	return student, nil
}

func (s *StudentService) List(ctx context.Context) ([]*domain.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return students, nil
}
