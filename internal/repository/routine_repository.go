package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gymadmin/internal/domain"
)

type RoutineRepository interface {
	Create(ctx context.Context, routine *domain.Routine) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Routine, error)
	ListByFacility(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) ([]domain.Routine, int64, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID, facilityID uuid.UUID) ([]domain.Routine, error)
	Update(ctx context.Context, routine *domain.Routine) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type routineRepository struct {
	db Querier
}

func NewRoutineRepository(db Querier) RoutineRepository {
	return &routineRepository{db: db}
}

func (r *routineRepository) Create(ctx context.Context, routine *domain.Routine) error {
	query := `
		INSERT INTO routines (routine_id, facility_id, name, description, difficulty, exercises)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		routine.ID, routine.FacilityID, routine.Name, routine.Description,
		routine.Difficulty, routine.Exercises,
	).Scan(&routine.CreatedAt, &routine.UpdatedAt)
}

func (r *routineRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Routine, error) {
	var routine domain.Routine
	query := `SELECT * FROM routines WHERE routine_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &routine, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

func (r *routineRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) ([]domain.Routine, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM routines WHERE facility_id = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery, facilityID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM routines
		WHERE facility_id = $1 AND deleted_at IS NULL
		ORDER BY name
		LIMIT $2 OFFSET $3`

	var routines []domain.Routine
	err := r.db.SelectContext(ctx, &routines, query, facilityID, params.PageSize, params.Offset())
	return routines, total, err
}

func (r *routineRepository) ListByIDs(ctx context.Context, ids []uuid.UUID, facilityID uuid.UUID) ([]domain.Routine, error) {
	if len(ids) == 0 {
		return []domain.Routine{}, nil
	}

	var routines []domain.Routine
	query := `
		SELECT * FROM routines
		WHERE routine_id = ANY($1) AND facility_id = $2 AND deleted_at IS NULL`

	err := r.db.SelectContext(ctx, &routines, query, pq.Array(uuidStrings(ids)), facilityID)
	return routines, err
}

func (r *routineRepository) Update(ctx context.Context, routine *domain.Routine) error {
	query := `
		UPDATE routines
		SET name = $2, description = $3, difficulty = $4, exercises = $5, updated_at = NOW()
		WHERE routine_id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		routine.ID, routine.Name, routine.Description, routine.Difficulty, routine.Exercises,
	).Scan(&routine.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrRoutineNotFound
	}
	return err
}

func (r *routineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE routines SET deleted_at = NOW() WHERE routine_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
