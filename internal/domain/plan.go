package domain

import (
	"time"

	"github.com/google/uuid"
)

type Plan struct {
	ID              uuid.UUID  `json:"id" db:"plan_id"`
	FacilityID      uuid.UUID  `json:"facility_id" db:"facility_id"`
	Name            string     `json:"name" db:"name"`
	Description     *string    `json:"description,omitempty" db:"description"`
	Price           float64    `json:"price" db:"price"`
	SessionsPerWeek int        `json:"sessions_per_week" db:"sessions_per_week"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt       *time.Time `json:"-" db:"deleted_at"`

	DiaryPlans []DiaryPlan `json:"diary_plans,omitempty" db:"-"`
}

// DiaryPlan is a schedule row owned by a plan: how many sessions of the
// plan run on a given weekday.
type DiaryPlan struct {
	ID         uuid.UUID `json:"id" db:"diary_plan_id"`
	PlanID     uuid.UUID `json:"plan_id" db:"plan_id"`
	FacilityID uuid.UUID `json:"facility_id" db:"facility_id"`
	DayOfWeek  int       `json:"day_of_week" db:"day_of_week"`
	Sessions   int       `json:"sessions" db:"sessions"`
}

type CreatePlanInput struct {
	Name            string                 `json:"name" validate:"required,min=2,max=100"`
	Description     *string                `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price           float64                `json:"price" validate:"omitempty,min=0"`
	SessionsPerWeek int                    `json:"sessions_per_week" validate:"omitempty,min=0"`
	DiaryPlans      []CreateDiaryPlanInput `json:"diary_plans,omitempty"`
}

type CreateDiaryPlanInput struct {
	DayOfWeek int `json:"day_of_week" validate:"min=0,max=6"`
	Sessions  int `json:"sessions" validate:"min=1"`
}

type UpdatePlanInput struct {
	Name            *string        `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description     NullableString `json:"description" validate:"omitempty,max=1000"`
	Price           *float64       `json:"price,omitempty" validate:"omitempty,min=0"`
	SessionsPerWeek *int           `json:"sessions_per_week,omitempty" validate:"omitempty,min=0"`
}
