package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gymadmin/internal/domain"
)

type DiaryRepository struct {
	mock.Mock
}

func (m *DiaryRepository) Create(ctx context.Context, diary *domain.Diary) error {
	args := m.Called(ctx, diary)
	return args.Error(0)
}

func (m *DiaryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Diary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Diary), args.Error(1)
}

func (m *DiaryRepository) ListByActivity(ctx context.Context, activityID uuid.UUID) ([]domain.Diary, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Diary), args.Error(1)
}

func (m *DiaryRepository) ListByIDs(ctx context.Context, ids []uuid.UUID, facilityID uuid.UUID) ([]domain.Diary, error) {
	args := m.Called(ctx, ids, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Diary), args.Error(1)
}

func (m *DiaryRepository) CountByActivityIDs(ctx context.Context, activityIDs []uuid.UUID) (int64, error) {
	args := m.Called(ctx, activityIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DiaryRepository) DeleteByActivityIDs(ctx context.Context, activityIDs []uuid.UUID) (int64, error) {
	args := m.Called(ctx, activityIDs)
	return args.Get(0).(int64), args.Error(1)
}
