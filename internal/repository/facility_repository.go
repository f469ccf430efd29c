package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gymadmin/internal/domain"
)

type FacilityRepository interface {
	Create(ctx context.Context, facility *domain.Facility) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error)
	List(ctx context.Context) ([]domain.Facility, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Facility, error)
	Update(ctx context.Context, facility *domain.Facility) error
}

type facilityRepository struct {
	db Querier
}

func NewFacilityRepository(db Querier) FacilityRepository {
	return &facilityRepository{db: db}
}

func (r *facilityRepository) Create(ctx context.Context, facility *domain.Facility) error {
	query := `
		INSERT INTO facilities (facility_id, name, is_active)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		facility.ID, facility.Name, facility.IsActive,
	).Scan(&facility.CreatedAt, &facility.UpdatedAt)
}

func (r *facilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error) {
	var facility domain.Facility
	query := `SELECT * FROM facilities WHERE facility_id = $1`

	err := r.db.GetContext(ctx, &facility, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &facility, nil
}

func (r *facilityRepository) List(ctx context.Context) ([]domain.Facility, error) {
	var facilities []domain.Facility
	query := `SELECT * FROM facilities ORDER BY name`

	err := r.db.SelectContext(ctx, &facilities, query)
	return facilities, err
}

func (r *facilityRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Facility, error) {
	if len(ids) == 0 {
		return []domain.Facility{}, nil
	}

	var facilities []domain.Facility
	query := `SELECT * FROM facilities WHERE facility_id = ANY($1)`

	err := r.db.SelectContext(ctx, &facilities, query, pq.Array(uuidStrings(ids)))
	return facilities, err
}

func (r *facilityRepository) Update(ctx context.Context, facility *domain.Facility) error {
	query := `
		UPDATE facilities
		SET name = $2, is_active = $3, updated_at = NOW()
		WHERE facility_id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		facility.ID, facility.Name, facility.IsActive,
	).Scan(&facility.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrFacilityNotFound
	}
	return err
}
