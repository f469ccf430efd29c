package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gymadmin/internal/domain"
)

type PlanRepository struct {
	mock.Mock
}

func (m *PlanRepository) Create(ctx context.Context, plan *domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *PlanRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) ([]domain.Plan, int64, error) {
	args := m.Called(ctx, facilityID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Plan), args.Get(1).(int64), args.Error(2)
}

func (m *PlanRepository) ListByIDs(ctx context.Context, ids []uuid.UUID, facilityID uuid.UUID) ([]domain.Plan, error) {
	args := m.Called(ctx, ids, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *PlanRepository) Update(ctx context.Context, plan *domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *PlanRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PlanRepository) InsertDiaryPlans(ctx context.Context, rows []domain.DiaryPlan) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *PlanRepository) ListDiaryPlansByPlanIDs(ctx context.Context, planIDs []uuid.UUID) ([]domain.DiaryPlan, error) {
	args := m.Called(ctx, planIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DiaryPlan), args.Error(1)
}

func (m *PlanRepository) CountDiaryPlansByPlanIDs(ctx context.Context, planIDs []uuid.UUID) (int64, error) {
	args := m.Called(ctx, planIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PlanRepository) DeleteDiaryPlansByPlanIDs(ctx context.Context, planIDs []uuid.UUID) (int64, error) {
	args := m.Called(ctx, planIDs)
	return args.Get(0).(int64), args.Error(1)
}
