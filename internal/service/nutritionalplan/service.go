package nutritionalplan

import (
	"context"

	"github.com/google/uuid"

	"gymadmin/internal/domain"
	"gymadmin/internal/repository"
	"gymadmin/internal/service/audit"
	"gymadmin/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, actorID, facilityID uuid.UUID, input domain.CreateNutritionalPlanInput) (*domain.NutritionalPlan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.NutritionalPlan, error)
	List(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.NutritionalPlan], error)
	Update(ctx context.Context, actorID, facilityID, id uuid.UUID, input domain.UpdateNutritionalPlanInput) (*domain.NutritionalPlan, error)
	Delete(ctx context.Context, actorID, facilityID, id uuid.UUID) error

	Assign(ctx context.Context, actorID, facilityID uuid.UUID, input domain.AssignNutritionalPlanInput) error
	Unassign(ctx context.Context, actorID, facilityID uuid.UUID, input domain.AssignNutritionalPlanInput) error
}

type service struct {
	repos    *repository.Repositories
	txm      repository.TxManager
	notifSvc notification.Service
}

func NewService(repos *repository.Repositories, txm repository.TxManager, notifSvc notification.Service) Service {
	return &service{repos: repos, txm: txm, notifSvc: notifSvc}
}

func (s *service) Create(ctx context.Context, actorID, facilityID uuid.UUID, input domain.CreateNutritionalPlanInput) (*domain.NutritionalPlan, error) {
	plan := &domain.NutritionalPlan{
		ID:          uuid.New(),
		FacilityID:  facilityID,
		Name:        input.Name,
		Description: input.Description,
		Meals:       input.Meals,
	}

	fin := domain.FanOutInput{
		IssuerID:   actorID,
		FacilityID: facilityID,
		Type:       domain.TxNutritionalPlanCreated,
		RelatedID:  &plan.ID,
	}

	err := s.mutate(ctx, fin, map[string]interface{}{"name": plan.Name}, func(r *repository.Repositories) error {
		return r.NutritionalPlan.Create(ctx, plan)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.NutritionalPlan, error) {
	plan, err := s.repos.NutritionalPlan.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNutritionalPlanNotFound
	}
	return plan, nil
}

func (s *service) List(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.NutritionalPlan], error) {
	plans, total, err := s.repos.NutritionalPlan.ListByFacility(ctx, facilityID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.NutritionalPlan]{}, err
	}
	return domain.NewPaginatedResponse(plans, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, actorID, facilityID, id uuid.UUID, input domain.UpdateNutritionalPlanInput) (*domain.NutritionalPlan, error) {
	plan, err := s.repos.NutritionalPlan.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil || plan.FacilityID != facilityID {
		return nil, domain.ErrNutritionalPlanNotFound
	}

	if input.Name != nil {
		plan.Name = *input.Name
	}
	if input.Description.Set {
		plan.Description = input.Description.Value
	}
	if input.Meals != nil {
		plan.Meals = input.Meals
	}

	fin := domain.FanOutInput{
		IssuerID:   actorID,
		FacilityID: facilityID,
		Type:       domain.TxNutritionalPlanUpdated,
		RelatedID:  &plan.ID,
	}

	err = s.mutate(ctx, fin, map[string]interface{}{"name": plan.Name}, func(r *repository.Repositories) error {
		return r.NutritionalPlan.Update(ctx, plan)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *service) Delete(ctx context.Context, actorID, facilityID, id uuid.UUID) error {
	plan, err := s.repos.NutritionalPlan.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if plan == nil || plan.FacilityID != facilityID {
		return domain.ErrNutritionalPlanNotFound
	}

	fin := domain.FanOutInput{
		IssuerID:   actorID,
		FacilityID: facilityID,
		Type:       domain.TxNutritionalPlanDeleted,
		RelatedID:  &plan.ID,
	}

	return s.mutate(ctx, fin, map[string]interface{}{"name": plan.Name}, func(r *repository.Repositories) error {
		return r.NutritionalPlan.Delete(ctx, id)
	})
}

func (s *service) Assign(ctx context.Context, actorID, facilityID uuid.UUID, input domain.AssignNutritionalPlanInput) error {
	return s.assign(ctx, actorID, facilityID, input, domain.TxAssignNutritionalPlanUser)
}

func (s *service) Unassign(ctx context.Context, actorID, facilityID uuid.UUID, input domain.AssignNutritionalPlanInput) error {
	return s.assign(ctx, actorID, facilityID, input, domain.TxUnassignNutritionalPlanUser)
}

func (s *service) assign(ctx context.Context, actorID, facilityID uuid.UUID, input domain.AssignNutritionalPlanInput, txType domain.TransactionType) error {
	plan, err := s.repos.NutritionalPlan.GetByID(ctx, input.NutritionalPlanID)
	if err != nil {
		return err
	}
	if plan == nil || plan.FacilityID != facilityID {
		return domain.ErrNutritionalPlanNotFound
	}

	fin := domain.FanOutInput{
		IssuerID:        actorID,
		FacilityID:      facilityID,
		Type:            txType,
		RelatedID:       &plan.ID,
		AssignedUserIDs: input.UserIDs,
	}

	return s.mutate(ctx, fin, map[string]interface{}{
		"name":     plan.Name,
		"user_ids": input.UserIDs,
	}, nil)
}

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
