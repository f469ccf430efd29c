package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gymadmin/internal/domain"
)

type FacilityRepository struct {
	mock.Mock
}

func (m *FacilityRepository) Create(ctx context.Context, facility *domain.Facility) error {
	args := m.Called(ctx, facility)
	return args.Error(0)
}

func (m *FacilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facility), args.Error(1)
}

func (m *FacilityRepository) List(ctx context.Context) ([]domain.Facility, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Facility), args.Error(1)
}

func (m *FacilityRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Facility, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Facility), args.Error(1)
}

func (m *FacilityRepository) Update(ctx context.Context, facility *domain.Facility) error {
	args := m.Called(ctx, facility)
	return args.Error(0)
}
