package domain

import (
	"time"

	"github.com/google/uuid"
)

type Facility struct {
	ID        uuid.UUID `json:"id" db:"facility_id"`
	Name      string    `json:"name" db:"name"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateFacilityInput struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type UpdateFacilityInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// FacilityMember is a user joined with their membership row for one facility.
// The recipient resolver works on this projection only.
type FacilityMember struct {
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	FullName string    `json:"full_name" db:"full_name"`
	Email    string    `json:"email" db:"email"`
	Role     UserRole  `json:"role" db:"role"`
}
