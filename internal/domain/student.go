package domain

import (
	"time"

	"github.com/google/uuid"
)

// Student represents a loan beneficiary
type Student struct {
	ID            uuid.UUID `json:"id" db:"id"`
	StudentNumber string    `json:"studentId" db:"student_number"`
	FirstName     string    `json:"firstName" db:"first_name"`
	LastName      string    `json:"lastName" db:"last_name"`
	Course        string    `json:"course" db:"course"`
	Institution   string    `json:"institution" db:"institution"`
	Region        string    `json:"region" db:"region"`
	Year          int       `json:"year" db:"year"`
	Semester      int       `json:"semester" db:"semester"`
	AccountNumber *string   `json:"accountNumber,omitempty" db:"account_number"`
	BankName      *string   `json:"bankName,omitempty" db:"bank_name"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

type CreateStudentRequest struct {
	StudentNumber string  `json:"studentId" validate:"required"`
	FirstName     string  `json:"firstName" validate:"required"`
	LastName      string  `json:"lastName" validate:"required"`
	Course        string  `json:"course" validate:"required"`
	Institution   string  `json:"institution" validate:"required"`
	Region        string  `json:"region" validate:"required"`
	Year          int     `json:"year" validate:"required,gte=1,lte=8"`
	Semester      int     `json:"semester" validate:"required,gte=1,lte=3"`
	AccountNumber *string `json:"accountNumber,omitempty"`
	BankName      *string `json:"bankName,omitempty"`
}
