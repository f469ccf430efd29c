package unit_test

import (
	"context"
	"errors"
	"testing"

	"gymadmin/internal/domain"
	"gymadmin/internal/repository"
	"gymadmin/internal/service/notification"
	"gymadmin/internal/service/replication"
	"gymadmin/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReplicationService_ReplicateRoutines(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()
	facilityID := uuid.New()
	targetA := uuid.New()
	targetB := uuid.New()

	sources := []domain.Routine{
		{ID: uuid.New(), FacilityID: facilityID, Name: "Push Day"},
		{ID: uuid.New(), FacilityID: facilityID, Name: "Pull Day"},
	}

	members := []domain.FacilityMember{{UserID: uuid.New(), Role: domain.RoleStaff}}

	t.Run("Every Source Copied To Every Target", func(t *testing.T) {
		mockRoutineRepo := new(mocks.RoutineRepository)
		mockTxRepo := new(mocks.TransactionRepository)
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)

		repos := &repository.Repositories{
			Routine:      mockRoutineRepo,
			Transaction:  mockTxRepo,
			Notification: mockNotifRepo,
			User:         mockUserRepo,
		}
		txm := &mocks.TxManager{Repos: repos}
		notifSvc := notification.NewService(mockNotifRepo, mockUserRepo, nil, nil)
		svc := replication.NewService(txm, notifSvc)

		// Duplicated target collapses to one copy set.
		input := domain.ReplicateInput{
			SourceIDs:         []uuid.UUID{sources[0].ID, sources[1].ID},
			TargetFacilityIDs: []uuid.UUID{targetA, targetB, targetA},
		}

		mockRoutineRepo.On("ListByIDs", ctx, input.SourceIDs, facilityID).Return(sources, nil).Once()
		mockRoutineRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Routine) bool {
			return r.FacilityID == targetA && r.ID != sources[0].ID && r.ID != sources[1].ID
		})).Return(nil).Twice()
		mockRoutineRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Routine) bool {
			return r.FacilityID == targetB
		})).Return(nil).Twice()

		// Audit rows land on the source facility and point at the source.
		mockTxRepo.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Type == domain.TxRoutineReplicated &&
				tx.FacilityID == facilityID &&
				tx.PerformedBy == actorID &&
				tx.RoutineID != nil &&
				(*tx.RoutineID == sources[0].ID || *tx.RoutineID == sources[1].ID)
		})).Return(nil).Times(4)

		mockUserRepo.On("ListFacilityMembers", ctx, targetA).Return(members, nil).Once()
		mockUserRepo.On("ListFacilityMembers", ctx, targetB).Return(members, nil).Once()

		// Multiple sources, so target notifications carry no related id.
		mockNotifRepo.On("CreateBatch", ctx, mock.MatchedBy(func(notifs []domain.Notification) bool {
			return len(notifs) == 1 && notifs[0].Type == domain.TxRoutineReplicated && notifs[0].RoutineID == nil
		})).Return(nil).Twice()

		result, err := svc.ReplicateRoutines(ctx, actorID, facilityID, input)

		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, 4, result.ReplicatedCount)
		assert.Len(t, result.Entities, 4)
		assert.Equal(t, "replicated 2 records to 2 facilities", result.Message)

		for _, entity := range result.Entities {
			assert.NotEqual(t, entity.SourceID, entity.ReplicaID)
			assert.Contains(t, []uuid.UUID{targetA, targetB}, entity.TargetFacilityID)
		}
		assert.Len(t, txm.Opts, 1)

		mockRoutineRepo.AssertExpectations(t)
		mockTxRepo.AssertExpectations(t)
		mockNotifRepo.AssertExpectations(t)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("No Sources In Scope", func(t *testing.T) {
		mockRoutineRepo := new(mocks.RoutineRepository)
		mockTxRepo := new(mocks.TransactionRepository)

		repos := &repository.Repositories{Routine: mockRoutineRepo, Transaction: mockTxRepo}
		svc := replication.NewService(&mocks.TxManager{Repos: repos}, nil)

		mockRoutineRepo.On("ListByIDs", ctx, mock.Anything, facilityID).Return([]domain.Routine{}, nil).Once()

		result, err := svc.ReplicateRoutines(ctx, actorID, facilityID, domain.ReplicateInput{
			SourceIDs:         []uuid.UUID{uuid.New()},
			TargetFacilityIDs: []uuid.UUID{targetA},
		})

		assert.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "no records found", result.Message)
		assert.Empty(t, result.Entities)

		mockRoutineRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockTxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Write Failure Rolls Back To Failed Result", func(t *testing.T) {
		mockRoutineRepo := new(mocks.RoutineRepository)
		mockTxRepo := new(mocks.TransactionRepository)

		repos := &repository.Repositories{Routine: mockRoutineRepo, Transaction: mockTxRepo}
		svc := replication.NewService(&mocks.TxManager{Repos: repos}, nil)

		mockRoutineRepo.On("ListByIDs", ctx, mock.Anything, facilityID).Return(sources, nil).Once()
		mockRoutineRepo.On("Create", ctx, mock.Anything).Return(errors.New("db error")).Once()

		result, err := svc.ReplicateRoutines(ctx, actorID, facilityID, domain.ReplicateInput{
			SourceIDs:         []uuid.UUID{sources[0].ID, sources[1].ID},
			TargetFacilityIDs: []uuid.UUID{targetA},
		})

		assert.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "replication failed", result.Message)

		mockTxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestReplicationService_ReplicateActivities(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()
	facilityID := uuid.New()
	targetID := uuid.New()
	sharedStaffID := uuid.New()
	localStaffID := uuid.New()

	source := domain.Activity{ID: uuid.New(), FacilityID: facilityID, Name: "Spinning", MaxCapacity: 20}

	t.Run("Staff Remapped To Target Membership", func(t *testing.T) {
		mockActivityRepo := new(mocks.ActivityRepository)
		mockTxRepo := new(mocks.TransactionRepository)
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)

		repos := &repository.Repositories{
			Activity:     mockActivityRepo,
			Transaction:  mockTxRepo,
			Notification: mockNotifRepo,
			User:         mockUserRepo,
		}
		notifSvc := notification.NewService(mockNotifRepo, mockUserRepo, nil, nil)
		svc := replication.NewService(&mocks.TxManager{Repos: repos}, notifSvc)

		input := domain.ReplicateInput{
			SourceIDs:         []uuid.UUID{source.ID},
			TargetFacilityIDs: []uuid.UUID{targetID},
		}

		mockActivityRepo.On("ListByIDs", ctx, input.SourceIDs, facilityID).Return([]domain.Activity{source}, nil).Once()
		mockActivityRepo.On("ListStaffByActivityIDs", ctx, []uuid.UUID{source.ID}).Return([]domain.ActivityStaff{
			{ActivityID: source.ID, UserID: sharedStaffID, FacilityID: facilityID},
			{ActivityID: source.ID, UserID: localStaffID, FacilityID: facilityID},
		}, nil).Once()

		// Only the user who is also staff in the target carries over.
		mockUserRepo.On("ListStaffIDs", ctx, targetID).Return([]uuid.UUID{sharedStaffID}, nil).Once()
		mockActivityRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Activity) bool {
			return a.FacilityID == targetID && a.Name == "Spinning" && a.MaxCapacity == 20
		})).Return(nil).Once()
		mockActivityRepo.On("InsertStaff", ctx, mock.MatchedBy(func(rows []domain.ActivityStaff) bool {
			return len(rows) == 1 && rows[0].UserID == sharedStaffID && rows[0].FacilityID == targetID
		})).Return(nil).Once()

		mockTxRepo.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Type == domain.TxActivityReplicated && tx.ActivityID != nil && *tx.ActivityID == source.ID
		})).Return(nil).Once()

		members := []domain.FacilityMember{{UserID: uuid.New(), Role: domain.RoleStaff}}
		mockUserRepo.On("ListFacilityMembers", ctx, targetID).Return(members, nil).Once()

		// Single source, so the notification points at the replica.
		mockNotifRepo.On("CreateBatch", ctx, mock.MatchedBy(func(notifs []domain.Notification) bool {
			return len(notifs) == 1 && notifs[0].ActivityID != nil && *notifs[0].ActivityID != source.ID
		})).Return(nil).Once()

		result, err := svc.ReplicateActivities(ctx, actorID, facilityID, input)

		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, 1, result.ReplicatedCount)
		assert.Equal(t, "replicated 1 records to 1 facilities", result.Message)

		mockActivityRepo.AssertExpectations(t)
		mockTxRepo.AssertExpectations(t)
		mockNotifRepo.AssertExpectations(t)
		mockUserRepo.AssertExpectations(t)
	})
}
