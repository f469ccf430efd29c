package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gymadmin/internal/domain"
)

type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *ActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *ActivityRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) ([]domain.Activity, int64, error) {
	args := m.Called(ctx, facilityID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Activity), args.Get(1).(int64), args.Error(2)
}

func (m *ActivityRepository) ListByIDs(ctx context.Context, ids []uuid.UUID, facilityID uuid.UUID) ([]domain.Activity, error) {
	args := m.Called(ctx, ids, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *ActivityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *ActivityRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ActivityRepository) InsertStaff(ctx context.Context, rows []domain.ActivityStaff) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *ActivityRepository) ListStaffByActivityIDs(ctx context.Context, activityIDs []uuid.UUID) ([]domain.ActivityStaff, error) {
	args := m.Called(ctx, activityIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityStaff), args.Error(1)
}

func (m *ActivityRepository) DeleteStaffByActivityIDs(ctx context.Context, activityIDs []uuid.UUID) error {
	args := m.Called(ctx, activityIDs)
	return args.Error(0)
}
