package domain

import (
	"time"

	"github.com/google/uuid"
)

type Activity struct {
	ID          uuid.UUID  `json:"id" db:"activity_id"`
	FacilityID  uuid.UUID  `json:"facility_id" db:"facility_id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	MaxCapacity int        `json:"max_capacity" db:"max_capacity"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`

	// Staff assignment rows, loaded on demand. A staff row's facility
	// always equals the activity's facility.
	Staff []ActivityStaff `json:"staff,omitempty" db:"-"`
}

type ActivityStaff struct {
	ActivityID uuid.UUID `json:"activity_id" db:"activity_id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	FacilityID uuid.UUID `json:"facility_id" db:"facility_id"`
}

type CreateActivityInput struct {
	Name        string      `json:"name" validate:"required,min=2,max=100"`
	Description *string     `json:"description,omitempty" validate:"omitempty,max=1000"`
	MaxCapacity int         `json:"max_capacity" validate:"omitempty,min=0"`
	StaffIDs    []uuid.UUID `json:"staff_ids,omitempty"`
}

type UpdateActivityInput struct {
	Name        *string        `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description NullableString `json:"description" validate:"omitempty,max=1000"`
	MaxCapacity *int           `json:"max_capacity,omitempty" validate:"omitempty,min=0"`
	StaffIDs    []uuid.UUID    `json:"staff_ids,omitempty"`
}
