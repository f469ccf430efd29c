package unit_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"gymadmin/internal/config"
	"gymadmin/internal/domain"
	"gymadmin/internal/repository"
	"gymadmin/internal/service/activity"
	"gymadmin/internal/service/notification"
	"gymadmin/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testConfig() *config.Config {
	return &config.Config{
		TxTimeout: 30 * time.Second,
		TxMaxWait: 5 * time.Second,
	}
}

type activityFixture struct {
	activityRepo *mocks.ActivityRepository
	diaryRepo    *mocks.DiaryRepository
	txRepo       *mocks.TransactionRepository
	notifRepo    *mocks.NotificationRepository
	userRepo     *mocks.UserRepository
	txm          *mocks.TxManager
	svc          activity.Service
}

func newActivityFixture() *activityFixture {
	f := &activityFixture{
		activityRepo: new(mocks.ActivityRepository),
		diaryRepo:    new(mocks.DiaryRepository),
		txRepo:       new(mocks.TransactionRepository),
		notifRepo:    new(mocks.NotificationRepository),
		userRepo:     new(mocks.UserRepository),
	}
	repos := &repository.Repositories{
		Activity:     f.activityRepo,
		Diary:        f.diaryRepo,
		Transaction:  f.txRepo,
		Notification: f.notifRepo,
		User:         f.userRepo,
	}
	f.txm = &mocks.TxManager{Repos: repos}
	notifSvc := notification.NewService(f.notifRepo, f.userRepo, nil, nil)
	f.svc = activity.NewService(repos, f.txm, notifSvc, testConfig())
	return f
}

func TestActivityService_DeleteMany(t *testing.T) {
	actorID := uuid.New()
	facilityID := uuid.New()

	members := []domain.FacilityMember{
		{UserID: actorID, Role: domain.RoleAdmin},
		{UserID: uuid.New(), Role: domain.RoleStaff},
	}

	t.Run("Deletes Scoped Activities With Dependents", func(t *testing.T) {
		f := newActivityFixture()

		scoped := []domain.Activity{
			{ID: uuid.New(), FacilityID: facilityID, Name: "Spinning"},
			{ID: uuid.New(), FacilityID: facilityID, Name: "Yoga"},
		}
		scopedIDs := []uuid.UUID{scoped[0].ID, scoped[1].ID}
		outsiderID := uuid.New()
		input := domain.BulkDeleteInput{IDs: append(scopedIDs, outsiderID)}

		// The repository narrows the ids to the facility; the outsider never
		// reaches a delete statement.
		f.activityRepo.On("ListByIDs", mock.Anything, input.IDs, facilityID).Return(scoped, nil).Once()
		f.diaryRepo.On("CountByActivityIDs", mock.Anything, scopedIDs).Return(int64(3), nil).Once()
		f.diaryRepo.On("DeleteByActivityIDs", mock.Anything, scopedIDs).Return(int64(3), nil).Once()
		f.activityRepo.On("DeleteStaffByActivityIDs", mock.Anything, scopedIDs).Return(nil).Once()
		f.activityRepo.On("DeleteByIDs", mock.Anything, scopedIDs).Return(int64(2), nil).Once()

		f.txRepo.On("Create", mock.Anything, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Type == domain.TxActivityDeleted && tx.FacilityID == facilityID && tx.ActivityID != nil
		})).Return(nil).Twice()

		f.userRepo.On("ListFacilityMembers", mock.Anything, facilityID).Return(members, nil).Once()
		// More than one activity deleted, so the notification has no related id.
		f.notifRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(notifs []domain.Notification) bool {
			return len(notifs) == 1 && notifs[0].ActivityID == nil
		})).Return(nil).Once()

		result, err := f.svc.DeleteMany(context.Background(), actorID, facilityID, input)

		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, int64(2), result.DeletedCount)
		assert.Equal(t, int64(3), result.DeletedDependentsCount)
		assert.Equal(t, "deleted 2 activities and 3 diaries", result.Message)

		assert.Len(t, f.txm.Opts, 1)
		assert.Equal(t, sql.LevelSerializable, f.txm.Opts[0].Isolation)

		f.activityRepo.AssertExpectations(t)
		f.diaryRepo.AssertExpectations(t)
		f.txRepo.AssertExpectations(t)
		f.notifRepo.AssertExpectations(t)
	})

	t.Run("Single Activity Notification Carries Its Id", func(t *testing.T) {
		f := newActivityFixture()

		scoped := []domain.Activity{{ID: uuid.New(), FacilityID: facilityID, Name: "Spinning"}}
		input := domain.BulkDeleteInput{IDs: []uuid.UUID{scoped[0].ID}}

		f.activityRepo.On("ListByIDs", mock.Anything, input.IDs, facilityID).Return(scoped, nil).Once()
		f.diaryRepo.On("CountByActivityIDs", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
		f.diaryRepo.On("DeleteByActivityIDs", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
		f.activityRepo.On("DeleteStaffByActivityIDs", mock.Anything, mock.Anything).Return(nil).Once()
		f.activityRepo.On("DeleteByIDs", mock.Anything, mock.Anything).Return(int64(1), nil).Once()
		f.txRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.userRepo.On("ListFacilityMembers", mock.Anything, facilityID).Return(members, nil).Once()
		f.notifRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(notifs []domain.Notification) bool {
			return len(notifs) == 1 && notifs[0].ActivityID != nil && *notifs[0].ActivityID == scoped[0].ID
		})).Return(nil).Once()

		result, err := f.svc.DeleteMany(context.Background(), actorID, facilityID, input)

		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "deleted 1 activities and 0 diaries", result.Message)

		f.notifRepo.AssertExpectations(t)
	})

	t.Run("No Records In Scope", func(t *testing.T) {
		f := newActivityFixture()

		f.activityRepo.On("ListByIDs", mock.Anything, mock.Anything, facilityID).Return([]domain.Activity{}, nil).Once()

		result, err := f.svc.DeleteMany(context.Background(), actorID, facilityID, domain.BulkDeleteInput{
			IDs: []uuid.UUID{uuid.New()},
		})

		assert.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "no records found", result.Message)
		assert.Zero(t, result.DeletedCount)

		f.activityRepo.AssertNotCalled(t, "DeleteByIDs", mock.Anything, mock.Anything)
		f.diaryRepo.AssertNotCalled(t, "DeleteByActivityIDs", mock.Anything, mock.Anything)
	})

	t.Run("Storage Failure Surfaces As Failed Result", func(t *testing.T) {
		f := newActivityFixture()

		scoped := []domain.Activity{{ID: uuid.New(), FacilityID: facilityID, Name: "Spinning"}}
		f.activityRepo.On("ListByIDs", mock.Anything, mock.Anything, facilityID).Return(scoped, nil).Once()
		f.diaryRepo.On("CountByActivityIDs", mock.Anything, mock.Anything).Return(int64(0), errors.New("deadlock detected")).Once()

		result, err := f.svc.DeleteMany(context.Background(), actorID, facilityID, domain.BulkDeleteInput{
			IDs: []uuid.UUID{scoped[0].ID},
		})

		assert.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "delete failed", result.Message)

		f.activityRepo.AssertNotCalled(t, "DeleteByIDs", mock.Anything, mock.Anything)
	})
}

func TestActivityService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()
	facilityID := uuid.New()
	staffID := uuid.New()
	clientID := uuid.New()

	t.Run("Non Staff Assignments Silently Dropped", func(t *testing.T) {
		f := newActivityFixture()

		input := domain.CreateActivityInput{
			Name:        "Spinning",
			MaxCapacity: 20,
			StaffIDs:    []uuid.UUID{staffID, clientID},
		}

		f.activityRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Activity) bool {
			return a.Name == "Spinning" && a.FacilityID == facilityID
		})).Return(nil).Once()
		f.userRepo.On("ListStaffIDs", ctx, facilityID).Return([]uuid.UUID{staffID}, nil).Once()
		f.activityRepo.On("InsertStaff", ctx, mock.MatchedBy(func(rows []domain.ActivityStaff) bool {
			return len(rows) == 1 && rows[0].UserID == staffID
		})).Return(nil).Once()
		f.txRepo.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Type == domain.TxActivityCreated
		})).Return(nil).Once()
		f.userRepo.On("ListFacilityMembers", ctx, facilityID).Return([]domain.FacilityMember{
			{UserID: staffID, Role: domain.RoleStaff},
		}, nil).Once()
		f.notifRepo.On("CreateBatch", ctx, mock.Anything).Return(nil).Once()

		created, err := f.svc.Create(ctx, actorID, facilityID, input)

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Len(t, created.Staff, 1)

		f.activityRepo.AssertExpectations(t)
		f.userRepo.AssertExpectations(t)
	})

	t.Run("Write Error Aborts", func(t *testing.T) {
		f := newActivityFixture()

		f.activityRepo.On("Create", ctx, mock.Anything).Return(errors.New("db error")).Once()

		created, err := f.svc.Create(ctx, actorID, facilityID, domain.CreateActivityInput{Name: "Spinning"})

		assert.Error(t, err)
		assert.Nil(t, created)

		f.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
