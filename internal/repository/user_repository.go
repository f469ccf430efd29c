package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"gymadmin/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	AssignRole(ctx context.Context, userID uuid.UUID, role domain.UserRole) error
	AddMembership(ctx context.Context, facilityID, userID uuid.UUID) error
	RemoveMembership(ctx context.Context, facilityID, userID uuid.UUID) error
	ListFacilityMembers(ctx context.Context, facilityID uuid.UUID) ([]domain.FacilityMember, error)
	ListStaffIDs(ctx context.Context, facilityID uuid.UUID) ([]uuid.UUID, error)
}

type userRepository struct {
	db Querier
}

func NewUserRepository(db Querier) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, email, password_hash, full_name, avatar_url, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName,
		user.AvatarURL, user.Role, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE user_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET email = :email, password_hash = :password_hash, full_name = :full_name,
			avatar_url = :avatar_url, role = :role, is_active = :is_active, updated_at = NOW()
		WHERE user_id = :user_id AND deleted_at IS NULL`

	_, err := r.db.NamedExecContext(ctx, query, user)
	return err
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET deleted_at = NOW() WHERE user_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *userRepository) AssignRole(ctx context.Context, userID uuid.UUID, role domain.UserRole) error {
	query := `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE user_id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	var updatedAt sql.NullTime
	err := r.db.QueryRowxContext(ctx, query, userID, role).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return err
}

func (r *userRepository) AddMembership(ctx context.Context, facilityID, userID uuid.UUID) error {
	query := `
		INSERT INTO facility_users (facility_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, facilityID, userID)
	return err
}

func (r *userRepository) RemoveMembership(ctx context.Context, facilityID, userID uuid.UUID) error {
	query := `DELETE FROM facility_users WHERE facility_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, facilityID, userID)
	return err
}

func (r *userRepository) ListFacilityMembers(ctx context.Context, facilityID uuid.UUID) ([]domain.FacilityMember, error) {
	var members []domain.FacilityMember
	query := `
		SELECT u.user_id, u.full_name, u.email, u.role
		FROM users u
		JOIN facility_users fu ON fu.user_id = u.user_id
		WHERE fu.facility_id = $1 AND u.deleted_at IS NULL AND u.is_active`

	err := r.db.SelectContext(ctx, &members, query, facilityID)
	return members, err
}

func (r *userRepository) ListStaffIDs(ctx context.Context, facilityID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `
		SELECT u.user_id
		FROM users u
		JOIN facility_users fu ON fu.user_id = u.user_id
		WHERE fu.facility_id = $1 AND u.role = $2 AND u.deleted_at IS NULL AND u.is_active`

	err := r.db.SelectContext(ctx, &ids, query, facilityID, domain.RoleStaff)
	return ids, err
}
