package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NutritionalPlan struct {
	ID          uuid.UUID       `json:"id" db:"nutritional_plan_id"`
	FacilityID  uuid.UUID       `json:"facility_id" db:"facility_id"`
	Name        string          `json:"name" db:"name"`
	Description *string         `json:"description,omitempty" db:"description"`
	Meals       json.RawMessage `json:"meals,omitempty" db:"meals"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time      `json:"-" db:"deleted_at"`
}

type CreateNutritionalPlanInput struct {
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=1000"`
	Meals       json.RawMessage `json:"meals,omitempty"`
}

type UpdateNutritionalPlanInput struct {
	Name        *string         `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description NullableString  `json:"description" validate:"omitempty,max=1000"`
	Meals       json.RawMessage `json:"meals,omitempty"`
}

type AssignNutritionalPlanInput struct {
	NutritionalPlanID uuid.UUID   `json:"nutritional_plan_id" validate:"required"`
	UserIDs           []uuid.UUID `json:"user_ids" validate:"required,min=1"`
}
