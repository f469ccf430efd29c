package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gymadmin/internal/domain"
)

type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error)
	ListByFacility(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) ([]domain.Plan, int64, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID, facilityID uuid.UUID) ([]domain.Plan, error)
	Update(ctx context.Context, plan *domain.Plan) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)

	InsertDiaryPlans(ctx context.Context, rows []domain.DiaryPlan) error
	ListDiaryPlansByPlanIDs(ctx context.Context, planIDs []uuid.UUID) ([]domain.DiaryPlan, error)
	CountDiaryPlansByPlanIDs(ctx context.Context, planIDs []uuid.UUID) (int64, error)
	DeleteDiaryPlansByPlanIDs(ctx context.Context, planIDs []uuid.UUID) (int64, error)
}

type planRepository struct {
	db Querier
}

func NewPlanRepository(db Querier) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, plan *domain.Plan) error {
	query := `
		INSERT INTO plans (plan_id, facility_id, name, description, price, sessions_per_week)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		plan.ID, plan.FacilityID, plan.Name, plan.Description,
		plan.Price, plan.SessionsPerWeek,
	).Scan(&plan.CreatedAt, &plan.UpdatedAt)
}

func (r *planRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error) {
	var plan domain.Plan
	query := `SELECT * FROM plans WHERE plan_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &plan, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) ([]domain.Plan, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM plans WHERE facility_id = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery, facilityID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM plans
		WHERE facility_id = $1 AND deleted_at IS NULL
		ORDER BY name
		LIMIT $2 OFFSET $3`

	var plans []domain.Plan
	err := r.db.SelectContext(ctx, &plans, query, facilityID, params.PageSize, params.Offset())
	return plans, total, err
}

func (r *planRepository) ListByIDs(ctx context.Context, ids []uuid.UUID, facilityID uuid.UUID) ([]domain.Plan, error) {
	if len(ids) == 0 {
		return []domain.Plan{}, nil
	}

	var plans []domain.Plan
	query := `
		SELECT * FROM plans
		WHERE plan_id = ANY($1) AND facility_id = $2 AND deleted_at IS NULL`

	err := r.db.SelectContext(ctx, &plans, query, pq.Array(uuidStrings(ids)), facilityID)
	return plans, err
}

func (r *planRepository) Update(ctx context.Context, plan *domain.Plan) error {
	query := `
		UPDATE plans
		SET name = $2, description = $3, price = $4, sessions_per_week = $5, updated_at = NOW()
		WHERE plan_id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		plan.ID, plan.Name, plan.Description, plan.Price, plan.SessionsPerWeek,
	).Scan(&plan.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrPlanNotFound
	}
	return err
}

func (r *planRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `DELETE FROM plans WHERE plan_id = ANY($1)`
	res, err := r.db.ExecContext(ctx, query, pq.Array(uuidStrings(ids)))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *planRepository) InsertDiaryPlans(ctx context.Context, rows []domain.DiaryPlan) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO diary_plans (diary_plan_id, plan_id, facility_id, day_of_week, sessions)
		VALUES (:diary_plan_id, :plan_id, :facility_id, :day_of_week, :sessions)`

	_, err := r.db.NamedExecContext(ctx, query, rows)
	return err
}

func (r *planRepository) ListDiaryPlansByPlanIDs(ctx context.Context, planIDs []uuid.UUID) ([]domain.DiaryPlan, error) {
	if len(planIDs) == 0 {
		return []domain.DiaryPlan{}, nil
	}

	var rows []domain.DiaryPlan
	query := `SELECT * FROM diary_plans WHERE plan_id = ANY($1) ORDER BY day_of_week`

	err := r.db.SelectContext(ctx, &rows, query, pq.Array(uuidStrings(planIDs)))
	return rows, err
}

func (r *planRepository) CountDiaryPlansByPlanIDs(ctx context.Context, planIDs []uuid.UUID) (int64, error) {
	if len(planIDs) == 0 {
		return 0, nil
	}

	var count int64
	query := `SELECT COUNT(*) FROM diary_plans WHERE plan_id = ANY($1)`

	err := r.db.GetContext(ctx, &count, query, pq.Array(uuidStrings(planIDs)))
	return count, err
}

func (r *planRepository) DeleteDiaryPlansByPlanIDs(ctx context.Context, planIDs []uuid.UUID) (int64, error) {
	if len(planIDs) == 0 {
		return 0, nil
	}

	query := `DELETE FROM diary_plans WHERE plan_id = ANY($1)`
	res, err := r.db.ExecContext(ctx, query, pq.Array(uuidStrings(planIDs)))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
