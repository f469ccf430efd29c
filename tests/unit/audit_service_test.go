package unit_test

import (
	"context"
	"errors"
	"testing"

	"gymadmin/internal/domain"
	"gymadmin/internal/service/audit"
	"gymadmin/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuditRecord(t *testing.T) {
	mockTxRepo := new(mocks.TransactionRepository)
	ctx := context.Background()
	actorID := uuid.New()
	facilityID := uuid.New()
	routineID := uuid.New()

	t.Run("Writes Row With Relation And Details", func(t *testing.T) {
		mockTxRepo.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Type == domain.TxRoutineCreated &&
				tx.PerformedBy == actorID &&
				tx.FacilityID == facilityID &&
				tx.RoutineID != nil && *tx.RoutineID == routineID &&
				tx.TargetUserID == nil
		})).Return(nil).Once()

		tx, err := audit.Record(ctx, mockTxRepo, domain.RecordTransactionInput{
			Type:        domain.TxRoutineCreated,
			PerformedBy: actorID,
			FacilityID:  facilityID,
			RelatedID:   &routineID,
			Details:     map[string]interface{}{"name": "Leg Day"},
		})

		assert.NoError(t, err)
		assert.NotNil(t, tx)
		assert.JSONEq(t, `{"name":"Leg Day"}`, string(tx.Details))

		mockTxRepo.AssertExpectations(t)
	})

	t.Run("Nil Details Normalized", func(t *testing.T) {
		mockTxRepo.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return string(tx.Details) == `{}`
		})).Return(nil).Once()

		tx, err := audit.Record(ctx, mockTxRepo, domain.RecordTransactionInput{
			Type:        domain.TxUserUpdated,
			PerformedBy: actorID,
			FacilityID:  facilityID,
		})

		assert.NoError(t, err)
		assert.Nil(t, tx.TargetUserID)

		mockTxRepo.AssertExpectations(t)
	})

	t.Run("Repo Error", func(t *testing.T) {
		mockTxRepo.On("Create", ctx, mock.Anything).Return(errors.New("db error")).Once()

		tx, err := audit.Record(ctx, mockTxRepo, domain.RecordTransactionInput{
			Type:        domain.TxRoutineCreated,
			PerformedBy: actorID,
			FacilityID:  facilityID,
		})

		assert.Error(t, err)
		assert.Nil(t, tx)

		mockTxRepo.AssertExpectations(t)
	})
}

func TestAuditService_Page(t *testing.T) {
	ctx := context.Background()
	facilityID := uuid.New()

	feedItems := func(n int) []domain.FeedItem {
		items := make([]domain.FeedItem, n)
		for i := range items {
			items[i].ID = uuid.New()
		}
		return items
	}

	t.Run("Full Page Yields Next Cursor", func(t *testing.T) {
		mockTxRepo := new(mocks.TransactionRepository)
		svc := audit.NewService(mockTxRepo)

		items := feedItems(3)
		mockTxRepo.On("PageByFacility", ctx, facilityID, (*uuid.UUID)(nil), 3).Return(items, nil).Once()

		page, err := svc.Page(ctx, facilityID, nil, 2)

		assert.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, items[0].ID, page.Items[0].ID)
		assert.NotNil(t, page.NextCursor)
		assert.Equal(t, items[2].ID, *page.NextCursor)

		mockTxRepo.AssertExpectations(t)
	})

	t.Run("Short Page Exhausts Feed", func(t *testing.T) {
		mockTxRepo := new(mocks.TransactionRepository)
		svc := audit.NewService(mockTxRepo)

		cursor := uuid.New()
		items := feedItems(1)
		mockTxRepo.On("PageByFacility", ctx, facilityID, &cursor, 3).Return(items, nil).Once()

		page, err := svc.Page(ctx, facilityID, &cursor, 2)

		assert.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Nil(t, page.NextCursor)

		mockTxRepo.AssertExpectations(t)
	})

	t.Run("Empty Feed Returns Empty Items", func(t *testing.T) {
		mockTxRepo := new(mocks.TransactionRepository)
		svc := audit.NewService(mockTxRepo)

		mockTxRepo.On("PageByFacility", ctx, facilityID, (*uuid.UUID)(nil), 3).Return([]domain.FeedItem{}, nil).Once()

		page, err := svc.Page(ctx, facilityID, nil, 2)

		assert.NoError(t, err)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Nil(t, page.NextCursor)

		mockTxRepo.AssertExpectations(t)
	})

	t.Run("Zero Page Size Uses Default", func(t *testing.T) {
		mockTxRepo := new(mocks.TransactionRepository)
		svc := audit.NewService(mockTxRepo)

		mockTxRepo.On("PageByFacility", ctx, facilityID, (*uuid.UUID)(nil), domain.DefaultFeedPageSize+1).Return([]domain.FeedItem{}, nil).Once()

		_, err := svc.Page(ctx, facilityID, nil, 0)

		assert.NoError(t, err)
		mockTxRepo.AssertExpectations(t)
	})

	t.Run("Repo Error", func(t *testing.T) {
		mockTxRepo := new(mocks.TransactionRepository)
		svc := audit.NewService(mockTxRepo)

		mockTxRepo.On("PageByFacility", ctx, facilityID, (*uuid.UUID)(nil), 3).Return(nil, errors.New("db error")).Once()

		_, err := svc.Page(ctx, facilityID, nil, 2)

		assert.Error(t, err)
		mockTxRepo.AssertExpectations(t)
	})
}

func TestAuditService_GetRecent(t *testing.T) {
	ctx := context.Background()
	facilityID := uuid.New()

	t.Run("Non Positive Limit Uses Default", func(t *testing.T) {
		mockTxRepo := new(mocks.TransactionRepository)
		svc := audit.NewService(mockTxRepo)

		mockTxRepo.On("ListRecent", ctx, facilityID, domain.DefaultFeedPageSize).Return([]domain.Transaction{}, nil).Once()

		txs, err := svc.GetRecent(ctx, facilityID, 0)

		assert.NoError(t, err)
		assert.Empty(t, txs)

		mockTxRepo.AssertExpectations(t)
	})

	t.Run("Explicit Limit Passed Through", func(t *testing.T) {
		mockTxRepo := new(mocks.TransactionRepository)
		svc := audit.NewService(mockTxRepo)

		mockTxRepo.On("ListRecent", ctx, facilityID, 5).Return([]domain.Transaction{{ID: uuid.New()}}, nil).Once()

		txs, err := svc.GetRecent(ctx, facilityID, 5)

		assert.NoError(t, err)
		assert.Len(t, txs, 1)

		mockTxRepo.AssertExpectations(t)
	})
}
