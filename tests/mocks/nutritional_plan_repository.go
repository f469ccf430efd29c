package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gymadmin/internal/domain"
)

type NutritionalPlanRepository struct {
	mock.Mock
}

func (m *NutritionalPlanRepository) Create(ctx context.Context, plan *domain.NutritionalPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *NutritionalPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.NutritionalPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NutritionalPlan), args.Error(1)
}

func (m *NutritionalPlanRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) ([]domain.NutritionalPlan, int64, error) {
	args := m.Called(ctx, facilityID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.NutritionalPlan), args.Get(1).(int64), args.Error(2)
}

func (m *NutritionalPlanRepository) ListByIDs(ctx context.Context, ids []uuid.UUID, facilityID uuid.UUID) ([]domain.NutritionalPlan, error) {
	args := m.Called(ctx, ids, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NutritionalPlan), args.Error(1)
}

func (m *NutritionalPlanRepository) Update(ctx context.Context, plan *domain.NutritionalPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *NutritionalPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
