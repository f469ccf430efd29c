package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gymadmin/internal/domain"
)

type NutritionalPlanRepository interface {
	Create(ctx context.Context, plan *domain.NutritionalPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.NutritionalPlan, error)
	ListByFacility(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) ([]domain.NutritionalPlan, int64, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID, facilityID uuid.UUID) ([]domain.NutritionalPlan, error)
	Update(ctx context.Context, plan *domain.NutritionalPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type nutritionalPlanRepository struct {
	db Querier
}

func NewNutritionalPlanRepository(db Querier) NutritionalPlanRepository {
	return &nutritionalPlanRepository{db: db}
}

func (r *nutritionalPlanRepository) Create(ctx context.Context, plan *domain.NutritionalPlan) error {
	query := `
		INSERT INTO nutritional_plans (nutritional_plan_id, facility_id, name, description, meals)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		plan.ID, plan.FacilityID, plan.Name, plan.Description, plan.Meals,
	).Scan(&plan.CreatedAt, &plan.UpdatedAt)
}

func (r *nutritionalPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.NutritionalPlan, error) {
	var plan domain.NutritionalPlan
	query := `SELECT * FROM nutritional_plans WHERE nutritional_plan_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &plan, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *nutritionalPlanRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) ([]domain.NutritionalPlan, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM nutritional_plans WHERE facility_id = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery, facilityID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM nutritional_plans
		WHERE facility_id = $1 AND deleted_at IS NULL
		ORDER BY name
		LIMIT $2 OFFSET $3`

	var plans []domain.NutritionalPlan
	err := r.db.SelectContext(ctx, &plans, query, facilityID, params.PageSize, params.Offset())
	return plans, total, err
}

func (r *nutritionalPlanRepository) ListByIDs(ctx context.Context, ids []uuid.UUID, facilityID uuid.UUID) ([]domain.NutritionalPlan, error) {
	if len(ids) == 0 {
		return []domain.NutritionalPlan{}, nil
	}

	var plans []domain.NutritionalPlan
	query := `
		SELECT * FROM nutritional_plans
		WHERE nutritional_plan_id = ANY($1) AND facility_id = $2 AND deleted_at IS NULL`

	err := r.db.SelectContext(ctx, &plans, query, pq.Array(uuidStrings(ids)), facilityID)
	return plans, err
}

func (r *nutritionalPlanRepository) Update(ctx context.Context, plan *domain.NutritionalPlan) error {
	query := `
		UPDATE nutritional_plans
		SET name = $2, description = $3, meals = $4, updated_at = NOW()
		WHERE nutritional_plan_id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		plan.ID, plan.Name, plan.Description, plan.Meals,
	).Scan(&plan.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNutritionalPlanNotFound
	}
	return err
}

func (r *nutritionalPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE nutritional_plans SET deleted_at = NOW() WHERE nutritional_plan_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
