package unit_test

import (
	"context"
	"errors"
	"testing"

	"gymadmin/internal/domain"
	"gymadmin/internal/service/notification"
	"gymadmin/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()

	t.Run("Paginates Inbox", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockNotifRepo, nil, nil, nil)

		params := domain.PaginationParams{Page: 2, PageSize: 10}
		rows := []domain.Notification{{ID: uuid.New(), RecipientID: recipientID}}
		mockNotifRepo.On("ListByRecipient", ctx, recipientID, true, params).Return(rows, int64(11), nil).Once()

		resp, err := svc.List(ctx, recipientID, true, params)

		assert.NoError(t, err)
		assert.Len(t, resp.Data, 1)
		assert.Equal(t, int64(11), resp.TotalItems)
		assert.Equal(t, 2, resp.TotalPages)
		assert.True(t, resp.HasPrev)
		assert.False(t, resp.HasNext)

		mockNotifRepo.AssertExpectations(t)
	})

	t.Run("Repo Error", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockNotifRepo, nil, nil, nil)

		params := domain.PaginationParams{Page: 1, PageSize: 20}
		mockNotifRepo.On("ListByRecipient", ctx, recipientID, false, params).Return(nil, int64(0), errors.New("db error")).Once()

		_, err := svc.List(ctx, recipientID, false, params)

		assert.Error(t, err)
	})
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()
	notifID := uuid.New()

	mockNotifRepo := new(mocks.NotificationRepository)
	svc := notification.NewService(mockNotifRepo, nil, nil, nil)

	mockNotifRepo.On("MarkAsRead", ctx, notifID, recipientID).Return(nil).Once()
	mockNotifRepo.On("MarkAllAsRead", ctx, recipientID).Return(nil).Once()

	assert.NoError(t, svc.MarkAsRead(ctx, notifID, recipientID))
	assert.NoError(t, svc.MarkAllAsRead(ctx, recipientID))

	mockNotifRepo.AssertExpectations(t)
}

func TestNotificationService_GetUnreadCount(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()

	t.Run("Counts From Repository Without Cache", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockNotifRepo, nil, nil, nil)

		mockNotifRepo.On("CountUnread", ctx, recipientID).Return(int64(4), nil).Once()

		count, err := svc.GetUnreadCount(ctx, recipientID)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)

		mockNotifRepo.AssertExpectations(t)
	})

	t.Run("Repo Error", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockNotifRepo, nil, nil, nil)

		mockNotifRepo.On("CountUnread", ctx, recipientID).Return(int64(0), errors.New("db error")).Once()

		count, err := svc.GetUnreadCount(ctx, recipientID)

		assert.Error(t, err)
		assert.Zero(t, count)
	})
}
