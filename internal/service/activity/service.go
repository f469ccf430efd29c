package activity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"gymadmin/internal/config"
	"gymadmin/internal/domain"
	"gymadmin/internal/repository"
	"gymadmin/internal/service/audit"
	"gymadmin/internal/service/notification"
)

var errNoRecords = errors.New("activity: no records in scope")

type Service interface {
	Create(ctx context.Context, actorID, facilityID uuid.UUID, input domain.CreateActivityInput) (*domain.Activity, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	List(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Activity], error)
	Update(ctx context.Context, actorID, facilityID, id uuid.UUID, input domain.UpdateActivityInput) (*domain.Activity, error)

	// DeleteMany removes the given activities of one facility together with
	// their diaries and staff assignments in a single serializable
	// transaction. Ids outside the facility are silently skipped.
	DeleteMany(ctx context.Context, actorID, facilityID uuid.UUID, input domain.BulkDeleteInput) (domain.BulkDeleteResult, error)

	CreateDiary(ctx context.Context, actorID, facilityID uuid.UUID, input domain.CreateDiaryInput) (*domain.Diary, error)
	ListDiaries(ctx context.Context, activityID uuid.UUID) ([]domain.Diary, error)
}

type service struct {
	repos    *repository.Repositories
	txm      repository.TxManager
	notifSvc notification.Service
	cfg      *config.Config
}

func NewService(repos *repository.Repositories, txm repository.TxManager, notifSvc notification.Service, cfg *config.Config) Service {
	return &service{repos: repos, txm: txm, notifSvc: notifSvc, cfg: cfg}
}

func (s *service) Create(ctx context.Context, actorID, facilityID uuid.UUID, input domain.CreateActivityInput) (*domain.Activity, error) {
	activity := &domain.Activity{
		ID:          uuid.New(),
		FacilityID:  facilityID,
		Name:        input.Name,
		Description: input.Description,
		MaxCapacity: input.MaxCapacity,
	}

	fin := domain.FanOutInput{
		IssuerID:   actorID,
		FacilityID: facilityID,
		Type:       domain.TxActivityCreated,
		RelatedID:  &activity.ID,
	}

	err := s.txm.InTx(ctx, nil, func(r *repository.Repositories) error {
		if err := r.Activity.Create(ctx, activity); err != nil {
			return err
		}

		staff, err := s.facilityStaffRows(ctx, r, activity.ID, facilityID, input.StaffIDs)
		if err != nil {
			return err
		}
		if err := r.Activity.InsertStaff(ctx, staff); err != nil {
			return err
		}
		activity.Staff = staff

		if _, err := audit.Record(ctx, r.Transaction, domain.RecordTransactionInput{
			Type:        domain.TxActivityCreated,
			PerformedBy: actorID,
			FacilityID:  facilityID,
			RelatedID:   &activity.ID,
			Details:     map[string]interface{}{"name": activity.Name},
		}); err != nil {
			return err
		}

		_, err = notification.FanOut(ctx, r.Notification, r.User, fin)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifSvc.EmailFanOut(fin)
	return activity, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	activity, err := s.repos.Activity.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, domain.ErrActivityNotFound
	}

	staff, err := s.repos.Activity.ListStaffByActivityIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	activity.Staff = staff
	return activity, nil
}

func (s *service) List(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Activity], error) {
	activities, total, err := s.repos.Activity.ListByFacility(ctx, facilityID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Activity]{}, err
	}
	return domain.NewPaginatedResponse(activities, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, actorID, facilityID, id uuid.UUID, input domain.UpdateActivityInput) (*domain.Activity, error) {
	activity, err := s.repos.Activity.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity == nil || activity.FacilityID != facilityID {
		return nil, domain.ErrActivityNotFound
	}

	if input.Name != nil {
		activity.Name = *input.Name
	}
	if input.Description.Set {
		activity.Description = input.Description.Value
	}
	if input.MaxCapacity != nil {
		activity.MaxCapacity = *input.MaxCapacity
	}

	fin := domain.FanOutInput{
		IssuerID:   actorID,
		FacilityID: facilityID,
		Type:       domain.TxActivityUpdated,
		RelatedID:  &activity.ID,
	}

	err = s.txm.InTx(ctx, nil, func(r *repository.Repositories) error {
		if err := r.Activity.Update(ctx, activity); err != nil {
			return err
		}

		if input.StaffIDs != nil {
			if err := r.Activity.DeleteStaffByActivityIDs(ctx, []uuid.UUID{activity.ID}); err != nil {
				return err
			}
			staff, err := s.facilityStaffRows(ctx, r, activity.ID, facilityID, input.StaffIDs)
			if err != nil {
				return err
			}
			if err := r.Activity.InsertStaff(ctx, staff); err != nil {
				return err
			}
			activity.Staff = staff
		}

		if _, err := audit.Record(ctx, r.Transaction, domain.RecordTransactionInput{
			Type:        domain.TxActivityUpdated,
			PerformedBy: actorID,
			FacilityID:  facilityID,
			RelatedID:   &activity.ID,
			Details:     map[string]interface{}{"name": activity.Name},
		}); err != nil {
			return err
		}

		_, err := notification.FanOut(ctx, r.Notification, r.User, fin)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifSvc.EmailFanOut(fin)
	return activity, nil
}

func (s *service) DeleteMany(ctx context.Context, actorID, facilityID uuid.UUID, input domain.BulkDeleteInput) (domain.BulkDeleteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.TxTimeout)
	defer cancel()

	var (
		result domain.BulkDeleteResult
		fin    domain.FanOutInput
	)

	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	err := s.txm.InTx(ctx, opts, func(r *repository.Repositories) error {
		if err := r.SetLockTimeout(ctx, s.cfg.TxMaxWait); err != nil {
			return err
		}

		scoped, err := r.Activity.ListByIDs(ctx, input.IDs, facilityID)
		if err != nil {
			return err
		}
		if len(scoped) == 0 {
			return errNoRecords
		}

		scopedIDs := make([]uuid.UUID, len(scoped))
		for i, a := range scoped {
			scopedIDs[i] = a.ID
		}

		dependents, err := r.Diary.CountByActivityIDs(ctx, scopedIDs)
		if err != nil {
			return err
		}
		if _, err := r.Diary.DeleteByActivityIDs(ctx, scopedIDs); err != nil {
			return err
		}
		if err := r.Activity.DeleteStaffByActivityIDs(ctx, scopedIDs); err != nil {
			return err
		}
		deleted, err := r.Activity.DeleteByIDs(ctx, scopedIDs)
		if err != nil {
			return err
		}

		for _, a := range scoped {
			id := a.ID
			if _, err := audit.Record(ctx, r.Transaction, domain.RecordTransactionInput{
				Type:        domain.TxActivityDeleted,
				PerformedBy: actorID,
				FacilityID:  facilityID,
				RelatedID:   &id,
				Details:     map[string]interface{}{"name": a.Name},
			}); err != nil {
				return err
			}
		}

		fin = domain.FanOutInput{
			IssuerID:   actorID,
			FacilityID: facilityID,
			Type:       domain.TxActivityDeleted,
		}
		if len(scoped) == 1 {
			fin.RelatedID = &scopedIDs[0]
		}
		if _, err := notification.FanOut(ctx, r.Notification, r.User, fin); err != nil {
			return err
		}

		result = domain.BulkDeleteResult{
			Success:                true,
			Message:                fmt.Sprintf("deleted %d activities and %d diaries", deleted, dependents),
			DeletedCount:           deleted,
			DeletedDependentsCount: dependents,
		}
		return nil
	})
	if errors.Is(err, errNoRecords) {
		return domain.BulkDeleteResult{Success: false, Message: "no records found"}, nil
	}
	if err != nil {
		log.Printf("activity bulk delete rolled back: %v", err)
		return domain.BulkDeleteResult{Success: false, Message: "delete failed"}, nil
	}

	s.notifSvc.EmailFanOut(fin)
	return result, nil
}

func (s *service) CreateDiary(ctx context.Context, actorID, facilityID uuid.UUID, input domain.CreateDiaryInput) (*domain.Diary, error) {
	parent, err := s.repos.Activity.GetByID(ctx, input.ActivityID)
	if err != nil {
		return nil, err
	}
	if parent == nil || parent.FacilityID != facilityID {
		return nil, domain.ErrActivityNotFound
	}

	activityID := input.ActivityID
	diary := &domain.Diary{
		ID:         uuid.New(),
		FacilityID: facilityID,
		ActivityID: &activityID,
		Name:       input.Name,
		DayOfWeek:  input.DayOfWeek,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Capacity:   input.Capacity,
	}

	fin := domain.FanOutInput{
		IssuerID:   actorID,
		FacilityID: facilityID,
		Type:       domain.TxDiaryCreated,
		RelatedID:  &diary.ID,
	}

	err = s.txm.InTx(ctx, nil, func(r *repository.Repositories) error {
		if err := r.Diary.Create(ctx, diary); err != nil {
			return err
		}

		if _, err := audit.Record(ctx, r.Transaction, domain.RecordTransactionInput{
			Type:        domain.TxDiaryCreated,
			PerformedBy: actorID,
			FacilityID:  facilityID,
			RelatedID:   &diary.ID,
			Details:     map[string]interface{}{"name": diary.Name, "activity_id": activityID},
		}); err != nil {
			return err
		}

		_, err := notification.FanOut(ctx, r.Notification, r.User, fin)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifSvc.EmailFanOut(fin)
	return diary, nil
}

func (s *service) ListDiaries(ctx context.Context, activityID uuid.UUID) ([]domain.Diary, error) {
	return s.repos.Diary.ListByActivity(ctx, activityID)
}

// facilityStaffRows keeps only requested users who are STAFF of the
// facility; anyone else is silently dropped.
func (s *service) facilityStaffRows(ctx context.Context, r *repository.Repositories, activityID, facilityID uuid.UUID, staffIDs []uuid.UUID) ([]domain.ActivityStaff, error) {
	if len(staffIDs) == 0 {
		return nil, nil
	}

	facilityStaff, err := r.User.ListStaffIDs(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	allowed := make(map[uuid.UUID]bool, len(facilityStaff))
	for _, id := range facilityStaff {
		allowed[id] = true
	}

	var rows []domain.ActivityStaff
	for _, userID := range staffIDs {
		if allowed[userID] {
			rows = append(rows, domain.ActivityStaff{
				ActivityID: activityID,
				UserID:     userID,
				FacilityID: facilityID,
			})
		}
	}
	return rows, nil
}
