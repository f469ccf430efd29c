package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gymadmin/internal/domain"
)

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *TransactionRepository) PageByFacility(ctx context.Context, facilityID uuid.UUID, cursor *uuid.UUID, limit int) ([]domain.FeedItem, error) {
	args := m.Called(ctx, facilityID, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeedItem), args.Error(1)
}

func (m *TransactionRepository) ListRecent(ctx context.Context, facilityID uuid.UUID, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, facilityID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
