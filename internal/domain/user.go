package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"user_id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"full_name" db:"full_name"`
	AvatarURL    *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	Role         UserRole   `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

type CreateUserInput struct {
	Email      string    `json:"email" validate:"required,email"`
	Password   string    `json:"password" validate:"required,min=8"`
	FullName   string    `json:"full_name" validate:"required,min=2"`
	Role       UserRole  `json:"role" validate:"required"`
	FacilityID uuid.UUID `json:"facility_id" validate:"required"`
}

type UpdateUserInput struct {
	FullName  *string        `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Email     *string        `json:"email,omitempty" validate:"omitempty,email"`
	Password  *string        `json:"password,omitempty" validate:"omitempty,min=8"`
	AvatarURL NullableString `json:"avatar_url"`
	IsActive  *bool          `json:"is_active,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AssignRoleInput struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   UserRole  `json:"role" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleStaff      UserRole = "STAFF"
	RoleClient     UserRole = "CLIENT"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleStaff, RoleClient:
		return true
	default:
		return false
	}
}

// IsStaffLevel reports whether the role belongs to facility personnel,
// i.e. anyone but a client.
func (r UserRole) IsStaffLevel() bool {
	return r == RoleSuperAdmin || r == RoleAdmin || r == RoleStaff
}

func (r UserRole) IsAdminLevel() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

func (u *User) HasRole(required UserRole) bool {
	switch required {
	case RoleSuperAdmin:
		return u.Role == RoleSuperAdmin
	case RoleAdmin:
		return u.Role.IsAdminLevel()
	case RoleStaff:
		return u.Role.IsStaffLevel()
	case RoleClient:
		return u.Role.IsValid()
	default:
		return false
	}
}
