package domain

import (
	"time"

	"github.com/google/uuid"
)

// Diary is a scheduled session slot of an activity. Diaries are the
// dependent rows counted and removed by the activity bulk delete. The
// activity reference is facility-scoped and nullable: replicating a diary
// into another facility drops it, since the parent activity does not exist
// there.
type Diary struct {
	ID         uuid.UUID  `json:"id" db:"diary_id"`
	FacilityID uuid.UUID  `json:"facility_id" db:"facility_id"`
	ActivityID *uuid.UUID `json:"activity_id,omitempty" db:"activity_id"`
	Name       string     `json:"name" db:"name"`
	DayOfWeek  int        `json:"day_of_week" db:"day_of_week"`
	StartTime  string     `json:"start_time" db:"start_time"`
	EndTime    string     `json:"end_time" db:"end_time"`
	Capacity   int        `json:"capacity" db:"capacity"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt  *time.Time `json:"-" db:"deleted_at"`
}

type CreateDiaryInput struct {
	ActivityID uuid.UUID `json:"activity_id" validate:"required"`
	Name       string    `json:"name" validate:"required,min=2,max=100"`
	DayOfWeek  int       `json:"day_of_week" validate:"min=0,max=6"`
	StartTime  string    `json:"start_time" validate:"required"`
	EndTime    string    `json:"end_time" validate:"required"`
	Capacity   int       `json:"capacity" validate:"omitempty,min=0"`
}
