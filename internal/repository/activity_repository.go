package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gymadmin/internal/domain"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	ListByFacility(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) ([]domain.Activity, int64, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID, facilityID uuid.UUID) ([]domain.Activity, error)
	Update(ctx context.Context, activity *domain.Activity) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)

	InsertStaff(ctx context.Context, rows []domain.ActivityStaff) error
	ListStaffByActivityIDs(ctx context.Context, activityIDs []uuid.UUID) ([]domain.ActivityStaff, error)
	DeleteStaffByActivityIDs(ctx context.Context, activityIDs []uuid.UUID) error
}

type activityRepository struct {
	db Querier
}

func NewActivityRepository(db Querier) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (activity_id, facility_id, name, description, max_capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		activity.ID, activity.FacilityID, activity.Name,
		activity.Description, activity.MaxCapacity,
	).Scan(&activity.CreatedAt, &activity.UpdatedAt)
}

func (r *activityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	var activity domain.Activity
	query := `SELECT * FROM activities WHERE activity_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &activity, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) ([]domain.Activity, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM activities WHERE facility_id = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery, facilityID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM activities
		WHERE facility_id = $1 AND deleted_at IS NULL
		ORDER BY name
		LIMIT $2 OFFSET $3`

	var activities []domain.Activity
	err := r.db.SelectContext(ctx, &activities, query, facilityID, params.PageSize, params.Offset())
	return activities, total, err
}

// ListByIDs returns the requested activities scoped to one facility. Ids
// belonging to another facility are simply absent from the result.
func (r *activityRepository) ListByIDs(ctx context.Context, ids []uuid.UUID, facilityID uuid.UUID) ([]domain.Activity, error) {
	if len(ids) == 0 {
		return []domain.Activity{}, nil
	}

	var activities []domain.Activity
	query := `
		SELECT * FROM activities
		WHERE activity_id = ANY($1) AND facility_id = $2 AND deleted_at IS NULL`

	err := r.db.SelectContext(ctx, &activities, query, pq.Array(uuidStrings(ids)), facilityID)
	return activities, err
}

func (r *activityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	query := `
		UPDATE activities
		SET name = $2, description = $3, max_capacity = $4, updated_at = NOW()
		WHERE activity_id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		activity.ID, activity.Name, activity.Description, activity.MaxCapacity,
	).Scan(&activity.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrActivityNotFound
	}
	return err
}

func (r *activityRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `DELETE FROM activities WHERE activity_id = ANY($1)`
	res, err := r.db.ExecContext(ctx, query, pq.Array(uuidStrings(ids)))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *activityRepository) InsertStaff(ctx context.Context, rows []domain.ActivityStaff) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO activity_staff (activity_id, user_id, facility_id)
		VALUES (:activity_id, :user_id, :facility_id)`

	_, err := r.db.NamedExecContext(ctx, query, rows)
	return err
}

func (r *activityRepository) ListStaffByActivityIDs(ctx context.Context, activityIDs []uuid.UUID) ([]domain.ActivityStaff, error) {
	if len(activityIDs) == 0 {
		return []domain.ActivityStaff{}, nil
	}

	var rows []domain.ActivityStaff
	query := `SELECT * FROM activity_staff WHERE activity_id = ANY($1)`

	err := r.db.SelectContext(ctx, &rows, query, pq.Array(uuidStrings(activityIDs)))
	return rows, err
}

func (r *activityRepository) DeleteStaffByActivityIDs(ctx context.Context, activityIDs []uuid.UUID) error {
	if len(activityIDs) == 0 {
		return nil
	}

	query := `DELETE FROM activity_staff WHERE activity_id = ANY($1)`
	_, err := r.db.ExecContext(ctx, query, pq.Array(uuidStrings(activityIDs)))
	return err
}
