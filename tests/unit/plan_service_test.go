package unit_test

import (
	"context"
	"database/sql"
	"testing"

	"gymadmin/internal/domain"
	"gymadmin/internal/repository"
	"gymadmin/internal/service/notification"
	"gymadmin/internal/service/plan"
	"gymadmin/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPlanService_DeleteMany(t *testing.T) {
	actorID := uuid.New()
	facilityID := uuid.New()

	members := []domain.FacilityMember{
		{UserID: actorID, Role: domain.RoleAdmin},
		{UserID: uuid.New(), Role: domain.RoleStaff},
	}

	newFixture := func() (*mocks.PlanRepository, *mocks.TransactionRepository, *mocks.NotificationRepository, *mocks.UserRepository, *mocks.TxManager, plan.Service) {
		planRepo := new(mocks.PlanRepository)
		txRepo := new(mocks.TransactionRepository)
		notifRepo := new(mocks.NotificationRepository)
		userRepo := new(mocks.UserRepository)

		repos := &repository.Repositories{
			Plan:         planRepo,
			Transaction:  txRepo,
			Notification: notifRepo,
			User:         userRepo,
		}
		txm := &mocks.TxManager{Repos: repos}
		notifSvc := notification.NewService(notifRepo, userRepo, nil, nil)
		svc := plan.NewService(repos, txm, notifSvc, testConfig())
		return planRepo, txRepo, notifRepo, userRepo, txm, svc
	}

	t.Run("Deletes Plans And Diary Plans Together", func(t *testing.T) {
		planRepo, txRepo, notifRepo, userRepo, txm, svc := newFixture()

		scoped := []domain.Plan{
			{ID: uuid.New(), FacilityID: facilityID, Name: "Monthly"},
			{ID: uuid.New(), FacilityID: facilityID, Name: "Quarterly"},
		}
		scopedIDs := []uuid.UUID{scoped[0].ID, scoped[1].ID}
		input := domain.BulkDeleteInput{IDs: scopedIDs}

		planRepo.On("ListByIDs", mock.Anything, input.IDs, facilityID).Return(scoped, nil).Once()
		planRepo.On("CountDiaryPlansByPlanIDs", mock.Anything, scopedIDs).Return(int64(5), nil).Once()
		planRepo.On("DeleteDiaryPlansByPlanIDs", mock.Anything, scopedIDs).Return(int64(5), nil).Once()
		planRepo.On("DeleteByIDs", mock.Anything, scopedIDs).Return(int64(2), nil).Once()

		txRepo.On("Create", mock.Anything, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Type == domain.TxPlanDeleted && tx.PlanID != nil
		})).Return(nil).Twice()

		userRepo.On("ListFacilityMembers", mock.Anything, facilityID).Return(members, nil).Once()
		notifRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(notifs []domain.Notification) bool {
			return len(notifs) == 1 && notifs[0].PlanID == nil
		})).Return(nil).Once()

		result, err := svc.DeleteMany(context.Background(), actorID, facilityID, input)

		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, int64(2), result.DeletedCount)
		assert.Equal(t, int64(5), result.DeletedDependentsCount)
		assert.Equal(t, "deleted 2 plans and 5 diary plans", result.Message)

		assert.Len(t, txm.Opts, 1)
		assert.Equal(t, sql.LevelSerializable, txm.Opts[0].Isolation)

		planRepo.AssertExpectations(t)
		txRepo.AssertExpectations(t)
		notifRepo.AssertExpectations(t)
	})

	t.Run("No Records In Scope", func(t *testing.T) {
		planRepo, txRepo, _, _, _, svc := newFixture()

		planRepo.On("ListByIDs", mock.Anything, mock.Anything, facilityID).Return([]domain.Plan{}, nil).Once()

		result, err := svc.DeleteMany(context.Background(), actorID, facilityID, domain.BulkDeleteInput{
			IDs: []uuid.UUID{uuid.New()},
		})

		assert.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "no records found", result.Message)

		planRepo.AssertNotCalled(t, "DeleteByIDs", mock.Anything, mock.Anything)
		txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
