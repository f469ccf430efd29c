package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gymadmin/internal/domain"
)

type DiaryRepository interface {
	Create(ctx context.Context, diary *domain.Diary) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Diary, error)
	ListByActivity(ctx context.Context, activityID uuid.UUID) ([]domain.Diary, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID, facilityID uuid.UUID) ([]domain.Diary, error)
	CountByActivityIDs(ctx context.Context, activityIDs []uuid.UUID) (int64, error)
	DeleteByActivityIDs(ctx context.Context, activityIDs []uuid.UUID) (int64, error)
}

type diaryRepository struct {
	db Querier
}

func NewDiaryRepository(db Querier) DiaryRepository {
	return &diaryRepository{db: db}
}

func (r *diaryRepository) Create(ctx context.Context, diary *domain.Diary) error {
	query := `
		INSERT INTO diaries (diary_id, facility_id, activity_id, name, day_of_week, start_time, end_time, capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		diary.ID, diary.FacilityID, diary.ActivityID, diary.Name,
		diary.DayOfWeek, diary.StartTime, diary.EndTime, diary.Capacity,
	).Scan(&diary.CreatedAt, &diary.UpdatedAt)
}

func (r *diaryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Diary, error) {
	var diary domain.Diary
	query := `SELECT * FROM diaries WHERE diary_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &diary, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &diary, nil
}

func (r *diaryRepository) ListByActivity(ctx context.Context, activityID uuid.UUID) ([]domain.Diary, error) {
	var diaries []domain.Diary
	query := `
		SELECT * FROM diaries
		WHERE activity_id = $1 AND deleted_at IS NULL
		ORDER BY day_of_week, start_time`

	err := r.db.SelectContext(ctx, &diaries, query, activityID)
	return diaries, err
}

func (r *diaryRepository) ListByIDs(ctx context.Context, ids []uuid.UUID, facilityID uuid.UUID) ([]domain.Diary, error) {
	if len(ids) == 0 {
		return []domain.Diary{}, nil
	}

	var diaries []domain.Diary
	query := `
		SELECT * FROM diaries
		WHERE diary_id = ANY($1) AND facility_id = $2 AND deleted_at IS NULL`

	err := r.db.SelectContext(ctx, &diaries, query, pq.Array(uuidStrings(ids)), facilityID)
	return diaries, err
}

// CountByActivityIDs counts every dependent diary row, soft-deleted ones
// included, matching what the delete below removes.
func (r *diaryRepository) CountByActivityIDs(ctx context.Context, activityIDs []uuid.UUID) (int64, error) {
	if len(activityIDs) == 0 {
		return 0, nil
	}

	var count int64
	query := `SELECT COUNT(*) FROM diaries WHERE activity_id = ANY($1)`

	err := r.db.GetContext(ctx, &count, query, pq.Array(uuidStrings(activityIDs)))
	return count, err
}

func (r *diaryRepository) DeleteByActivityIDs(ctx context.Context, activityIDs []uuid.UUID) (int64, error) {
	if len(activityIDs) == 0 {
		return 0, nil
	}

	query := `DELETE FROM diaries WHERE activity_id = ANY($1)`
	res, err := r.db.ExecContext(ctx, query, pq.Array(uuidStrings(activityIDs)))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
