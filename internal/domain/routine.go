package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Routine struct {
	ID          uuid.UUID       `json:"id" db:"routine_id"`
	FacilityID  uuid.UUID       `json:"facility_id" db:"facility_id"`
	Name        string          `json:"name" db:"name"`
	Description *string         `json:"description,omitempty" db:"description"`
	Difficulty  *string         `json:"difficulty,omitempty" db:"difficulty"`
	Exercises   json.RawMessage `json:"exercises,omitempty" db:"exercises"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time      `json:"-" db:"deleted_at"`
}

type CreateRoutineInput struct {
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=1000"`
	Difficulty  *string         `json:"difficulty,omitempty" validate:"omitempty,max=50"`
	Exercises   json.RawMessage `json:"exercises,omitempty"`
}

type UpdateRoutineInput struct {
	Name        *string         `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description NullableString  `json:"description" validate:"omitempty,max=1000"`
	Difficulty  NullableString  `json:"difficulty" validate:"omitempty,max=50"`
	Exercises   json.RawMessage `json:"exercises,omitempty"`
}

type AssignRoutineInput struct {
	RoutineID uuid.UUID   `json:"routine_id" validate:"required"`
	UserIDs   []uuid.UUID `json:"user_ids" validate:"required,min=1"`
}
