package unit_test

import (
	"context"
	"testing"

	"gymadmin/internal/domain"
	"gymadmin/internal/repository"
	"gymadmin/internal/service/notification"
	"gymadmin/internal/service/routine"
	"gymadmin/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRoutineService_Assign(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()
	facilityID := uuid.New()
	clientID := uuid.New()
	staffID := uuid.New()

	existing := &domain.Routine{ID: uuid.New(), FacilityID: facilityID, Name: "Push Day"}

	newFixture := func() (*mocks.RoutineRepository, *mocks.TransactionRepository, *mocks.NotificationRepository, *mocks.UserRepository, routine.Service) {
		routineRepo := new(mocks.RoutineRepository)
		txRepo := new(mocks.TransactionRepository)
		notifRepo := new(mocks.NotificationRepository)
		userRepo := new(mocks.UserRepository)

		repos := &repository.Repositories{
			Routine:      routineRepo,
			Transaction:  txRepo,
			Notification: notifRepo,
			User:         userRepo,
		}
		notifSvc := notification.NewService(notifRepo, userRepo, nil, nil)
		svc := routine.NewService(repos, &mocks.TxManager{Repos: repos}, notifSvc)
		return routineRepo, txRepo, notifRepo, userRepo, svc
	}

	t.Run("Assigned Client Is Notified", func(t *testing.T) {
		routineRepo, txRepo, notifRepo, userRepo, svc := newFixture()

		routineRepo.On("GetByID", ctx, existing.ID).Return(existing, nil).Once()

		txRepo.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Type == domain.TxAssignRoutineUser &&
				tx.RoutineID != nil && *tx.RoutineID == existing.ID
		})).Return(nil).Once()

		members := []domain.FacilityMember{
			{UserID: actorID, Role: domain.RoleAdmin},
			{UserID: staffID, Role: domain.RoleStaff},
			{UserID: clientID, Role: domain.RoleClient},
		}
		userRepo.On("ListFacilityMembers", ctx, facilityID).Return(members, nil).Once()

		notifRepo.On("CreateBatch", ctx, mock.MatchedBy(func(notifs []domain.Notification) bool {
			recipients := make(map[uuid.UUID]bool, len(notifs))
			for _, n := range notifs {
				recipients[n.RecipientID] = true
			}
			return len(notifs) == 2 && recipients[staffID] && recipients[clientID]
		})).Return(nil).Once()

		err := svc.Assign(ctx, actorID, facilityID, domain.AssignRoutineInput{
			RoutineID: existing.ID,
			UserIDs:   []uuid.UUID{clientID},
		})

		assert.NoError(t, err)

		routineRepo.AssertExpectations(t)
		txRepo.AssertExpectations(t)
		notifRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("Routine Of Another Facility", func(t *testing.T) {
		routineRepo, txRepo, _, _, svc := newFixture()

		foreign := &domain.Routine{ID: uuid.New(), FacilityID: uuid.New(), Name: "Elsewhere"}
		routineRepo.On("GetByID", ctx, foreign.ID).Return(foreign, nil).Once()

		err := svc.Assign(ctx, actorID, facilityID, domain.AssignRoutineInput{
			RoutineID: foreign.ID,
			UserIDs:   []uuid.UUID{clientID},
		})

		assert.ErrorIs(t, err, domain.ErrRoutineNotFound)
		txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unassign Uses Its Own Type", func(t *testing.T) {
		routineRepo, txRepo, notifRepo, userRepo, svc := newFixture()

		routineRepo.On("GetByID", ctx, existing.ID).Return(existing, nil).Once()
		txRepo.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Type == domain.TxUnassignRoutineUser
		})).Return(nil).Once()
		userRepo.On("ListFacilityMembers", ctx, facilityID).Return([]domain.FacilityMember{
			{UserID: actorID, Role: domain.RoleAdmin},
		}, nil).Once()
		notifRepo.On("CreateBatch", ctx, mock.MatchedBy(func(notifs []domain.Notification) bool {
			return len(notifs) == 1 && notifs[0].RecipientID == clientID
		})).Return(nil).Once()

		err := svc.Unassign(ctx, actorID, facilityID, domain.AssignRoutineInput{
			RoutineID: existing.ID,
			UserIDs:   []uuid.UUID{clientID},
		})

		assert.NoError(t, err)
		txRepo.AssertExpectations(t)
	})
}
