package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gymadmin/internal/domain"
)

type RoutineRepository struct {
	mock.Mock
}

func (m *RoutineRepository) Create(ctx context.Context, routine *domain.Routine) error {
	args := m.Called(ctx, routine)
	return args.Error(0)
}

func (m *RoutineRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Routine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Routine), args.Error(1)
}

func (m *RoutineRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) ([]domain.Routine, int64, error) {
	args := m.Called(ctx, facilityID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Routine), args.Get(1).(int64), args.Error(2)
}

func (m *RoutineRepository) ListByIDs(ctx context.Context, ids []uuid.UUID, facilityID uuid.UUID) ([]domain.Routine, error) {
	args := m.Called(ctx, ids, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Routine), args.Error(1)
}

func (m *RoutineRepository) Update(ctx context.Context, routine *domain.Routine) error {
	args := m.Called(ctx, routine)
	return args.Error(0)
}

func (m *RoutineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
