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
	"github.com/stretchr/testify/mock"
)

func TestFanOut(t *testing.T) {
	ctx := context.Background()
	issuerID := uuid.New()
	facilityID := uuid.New()
	adminID := uuid.New()
	staffID := uuid.New()

	members := []domain.FacilityMember{
		{UserID: issuerID, Role: domain.RoleAdmin},
		{UserID: adminID, Role: domain.RoleAdmin},
		{UserID: staffID, Role: domain.RoleStaff},
	}

	t.Run("One Row Per Recipient", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)

		activityID := uuid.New()
		input := domain.FanOutInput{
			IssuerID:   issuerID,
			FacilityID: facilityID,
			Type:       domain.TxActivityCreated,
			RelatedID:  &activityID,
		}

		mockUserRepo.On("ListFacilityMembers", ctx, facilityID).Return(members, nil).Once()
		mockNotifRepo.On("CreateBatch", ctx, mock.MatchedBy(func(notifs []domain.Notification) bool {
			if len(notifs) != 2 {
				return false
			}
			for _, n := range notifs {
				if n.IssuerID != issuerID || n.FacilityID != facilityID {
					return false
				}
				if n.ActivityID == nil || *n.ActivityID != activityID {
					return false
				}
			}
			return notifs[0].RecipientID != notifs[1].RecipientID
		})).Return(nil).Once()

		count, err := notification.FanOut(ctx, mockNotifRepo, mockUserRepo, input)

		assert.NoError(t, err)
		assert.Equal(t, 2, count)

		mockNotifRepo.AssertExpectations(t)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Zero Recipients Insert Nothing", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)

		onlyIssuer := []domain.FacilityMember{{UserID: issuerID, Role: domain.RoleAdmin}}
		mockUserRepo.On("ListFacilityMembers", ctx, facilityID).Return(onlyIssuer, nil).Once()

		count, err := notification.FanOut(ctx, mockNotifRepo, mockUserRepo, domain.FanOutInput{
			IssuerID:   issuerID,
			FacilityID: facilityID,
			Type:       domain.TxActivityCreated,
		})

		assert.NoError(t, err)
		assert.Zero(t, count)

		mockNotifRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("No Related ID Leaves Relations Nil", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)

		mockUserRepo.On("ListFacilityMembers", ctx, facilityID).Return(members, nil).Once()
		mockNotifRepo.On("CreateBatch", ctx, mock.MatchedBy(func(notifs []domain.Notification) bool {
			for _, n := range notifs {
				if n.ActivityID != nil || n.TargetUserID != nil {
					return false
				}
			}
			return true
		})).Return(nil).Once()

		_, err := notification.FanOut(ctx, mockNotifRepo, mockUserRepo, domain.FanOutInput{
			IssuerID:   issuerID,
			FacilityID: facilityID,
			Type:       domain.TxActivityDeleted,
		})

		assert.NoError(t, err)
		mockNotifRepo.AssertExpectations(t)
	})

	t.Run("Member Lookup Error", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)

		mockUserRepo.On("ListFacilityMembers", ctx, facilityID).Return(nil, errors.New("db error")).Once()

		count, err := notification.FanOut(ctx, mockNotifRepo, mockUserRepo, domain.FanOutInput{
			IssuerID:   issuerID,
			FacilityID: facilityID,
			Type:       domain.TxActivityCreated,
		})

		assert.Error(t, err)
		assert.Zero(t, count)
	})
}
