package routine

import (
	"context"

	"github.com/google/uuid"

	"gymadmin/internal/domain"
	"gymadmin/internal/repository"
	"gymadmin/internal/service/audit"
	"gymadmin/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, actorID, facilityID uuid.UUID, input domain.CreateRoutineInput) (*domain.Routine, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Routine, error)
	List(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Routine], error)
	Update(ctx context.Context, actorID, facilityID, id uuid.UUID, input domain.UpdateRoutineInput) (*domain.Routine, error)
	Delete(ctx context.Context, actorID, facilityID, id uuid.UUID) error

	// Assign and Unassign notify the named users directly, on top of the
	// usual staff fan-out.
	Assign(ctx context.Context, actorID, facilityID uuid.UUID, input domain.AssignRoutineInput) error
	Unassign(ctx context.Context, actorID, facilityID uuid.UUID, input domain.AssignRoutineInput) error
}

type service struct {
	repos    *repository.Repositories
	txm      repository.TxManager
	notifSvc notification.Service
}

func NewService(repos *repository.Repositories, txm repository.TxManager, notifSvc notification.Service) Service {
	return &service{repos: repos, txm: txm, notifSvc: notifSvc}
}

func (s *service) Create(ctx context.Context, actorID, facilityID uuid.UUID, input domain.CreateRoutineInput) (*domain.Routine, error) {
	routine := &domain.Routine{
		ID:          uuid.New(),
		FacilityID:  facilityID,
		Name:        input.Name,
		Description: input.Description,
		Difficulty:  input.Difficulty,
		Exercises:   input.Exercises,
	}

	fin := domain.FanOutInput{
		IssuerID:   actorID,
		FacilityID: facilityID,
		Type:       domain.TxRoutineCreated,
		RelatedID:  &routine.ID,
	}

	err := s.mutate(ctx, fin, map[string]interface{}{"name": routine.Name}, func(r *repository.Repositories) error {
		return r.Routine.Create(ctx, routine)
	})
	if err != nil {
		return nil, err
	}
	return routine, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Routine, error) {
	routine, err := s.repos.Routine.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if routine == nil {
		return nil, domain.ErrRoutineNotFound
	}
	return routine, nil
}

func (s *service) List(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Routine], error) {
	routines, total, err := s.repos.Routine.ListByFacility(ctx, facilityID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Routine]{}, err
	}
	return domain.NewPaginatedResponse(routines, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, actorID, facilityID, id uuid.UUID, input domain.UpdateRoutineInput) (*domain.Routine, error) {
	routine, err := s.repos.Routine.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if routine == nil || routine.FacilityID != facilityID {
		return nil, domain.ErrRoutineNotFound
	}

	if input.Name != nil {
		routine.Name = *input.Name
	}
	if input.Description.Set {
		routine.Description = input.Description.Value
	}
	if input.Difficulty.Set {
		routine.Difficulty = input.Difficulty.Value
	}
	if input.Exercises != nil {
		routine.Exercises = input.Exercises
	}

	fin := domain.FanOutInput{
		IssuerID:   actorID,
		FacilityID: facilityID,
		Type:       domain.TxRoutineUpdated,
		RelatedID:  &routine.ID,
	}

	err = s.mutate(ctx, fin, map[string]interface{}{"name": routine.Name}, func(r *repository.Repositories) error {
		return r.Routine.Update(ctx, routine)
	})
	if err != nil {
		return nil, err
	}
	return routine, nil
}

func (s *service) Delete(ctx context.Context, actorID, facilityID, id uuid.UUID) error {
	routine, err := s.repos.Routine.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if routine == nil || routine.FacilityID != facilityID {
		return domain.ErrRoutineNotFound
	}

	fin := domain.FanOutInput{
		IssuerID:   actorID,
		FacilityID: facilityID,
		Type:       domain.TxRoutineDeleted,
		RelatedID:  &routine.ID,
	}

	return s.mutate(ctx, fin, map[string]interface{}{"name": routine.Name}, func(r *repository.Repositories) error {
		return r.Routine.Delete(ctx, id)
	})
}

func (s *service) Assign(ctx context.Context, actorID, facilityID uuid.UUID, input domain.AssignRoutineInput) error {
	return s.assign(ctx, actorID, facilityID, input, domain.TxAssignRoutineUser)
}

func (s *service) Unassign(ctx context.Context, actorID, facilityID uuid.UUID, input domain.AssignRoutineInput) error {
	return s.assign(ctx, actorID, facilityID, input, domain.TxUnassignRoutineUser)
}

func (s *service) assign(ctx context.Context, actorID, facilityID uuid.UUID, input domain.AssignRoutineInput, txType domain.TransactionType) error {
	routine, err := s.repos.Routine.GetByID(ctx, input.RoutineID)
	if err != nil {
		return err
	}
	if routine == nil || routine.FacilityID != facilityID {
		return domain.ErrRoutineNotFound
	}

	fin := domain.FanOutInput{
		IssuerID:        actorID,
		FacilityID:      facilityID,
		Type:            txType,
		RelatedID:       &routine.ID,
		AssignedUserIDs: input.UserIDs,
	}

	return s.mutate(ctx, fin, map[string]interface{}{
		"name":     routine.Name,
		"user_ids": input.UserIDs,
	}, nil)
}

// mutate wraps one write in a transaction with its audit row and
// notification batch, then fires the email side channel on commit. A nil
// write records audit and notifications only.
func (s *service) mutate(ctx context.Context, fin domain.FanOutInput, details map[string]interface{}, write func(*repository.Repositories) error) error {
	err := s.txm.InTx(ctx, nil, func(r *repository.Repositories) error {
		if write != nil {
			if err := write(r); err != nil {
				return err
			}
		}

		if _, err := audit.Record(ctx, r.Transaction, domain.RecordTransactionInput{
			Type:        fin.Type,
			PerformedBy: fin.IssuerID,
			FacilityID:  fin.FacilityID,
			RelatedID:   fin.RelatedID,
			Details:     details,
		}); err != nil {
			return err
		}

		_, err := notification.FanOut(ctx, r.Notification, r.User, fin)
		return err
	})
	if err != nil {
		return err
	}

	s.notifSvc.EmailFanOut(fin)
	return nil
}
