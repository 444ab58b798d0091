package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

const (
	DisbursementStatusPending    = "pending"
	DisbursementStatusProcessing = "processing"
	DisbursementStatusCompleted  = "completed"
	DisbursementStatusFailed     = "failed"
)

const (
	DisbursementTypeTuition  = "tuition"
	DisbursementTypeUpkeep   = "upkeep"
	DisbursementTypeBooks    = "books"
	DisbursementTypeSupplies = "supplies"
)

// Disbursement is a payout of loan funds to a university or a student
type Disbursement struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	StudentID        uuid.UUID       `json:"studentId" db:"student_id"`
	Type             string          `json:"type" db:"type"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	Status           string          `json:"status" db:"status"`
	Recipient        *string         `json:"recipient,omitempty" db:"recipient"`
	AIRecommendation *types.JSONText `json:"aiRecommendation,omitempty" db:"ai_recommendation"`
	ProcessedAt      *time.Time      `json:"processedAt,omitempty" db:"processed_at"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
}

// DisbursementWithStudent is a disbursement joined with its beneficiary
type DisbursementWithStudent struct {
	Disbursement
	Student Student `json:"student" db:"student"`
}

type CreateDisbursementRequest struct {
	StudentID        uuid.UUID       `json:"studentId" validate:"required"`
	Type             string          `json:"type" validate:"required,oneof=tuition upkeep books supplies"`
	Amount           decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	Status           string          `json:"status" validate:"omitempty,oneof=pending processing completed failed"`
	Recipient        *string         `json:"recipient,omitempty" validate:"omitempty,oneof=university student"`
	AIRecommendation *types.JSONText `json:"aiRecommendation,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// DisbursementCalculationRequest carries the student profile the advisor sizes a disbursement for
type DisbursementCalculationRequest struct {
	StudentID   *uuid.UUID `json:"studentId,omitempty"`
	Course      string     `json:"course" validate:"required"`
	Institution string     `json:"institution" validate:"required"`
	Region      string     `json:"region" validate:"required"`
	Year        int        `json:"year" validate:"required,gte=1"`
	Semester    int        `json:"semester" validate:"required,gte=1"`
}

// DisbursementCalculation is the advisor's suggested breakdown
type DisbursementCalculation struct {
	Tuition       decimal.Decimal     `json:"tuition"`
	Upkeep        decimal.Decimal     `json:"upkeep"`
	Books         decimal.Decimal     `json:"books"`
	Supplies      decimal.Decimal     `json:"supplies"`
	Accommodation decimal.NullDecimal `json:"accommodation"`
	Total         decimal.Decimal     `json:"total"`
	Reasoning     string              `json:"reasoning"`
	Fallback      bool                `json:"fallback"`
}

func IsValidDisbursementStatus(status string) bool {
	switch status {
	case DisbursementStatusPending, DisbursementStatusProcessing, DisbursementStatusCompleted, DisbursementStatusFailed:
		return true
	}
	return false
}
