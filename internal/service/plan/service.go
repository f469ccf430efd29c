package plan

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

var errNoRecords = errors.New("plan: no records in scope")

type Service interface {
	Create(ctx context.Context, actorID, facilityID uuid.UUID, input domain.CreatePlanInput) (*domain.Plan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error)
	List(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Plan], error)
	Update(ctx context.Context, actorID, facilityID, id uuid.UUID, input domain.UpdatePlanInput) (*domain.Plan, error)

	// DeleteMany removes the given plans of one facility together with their
	// diary plan rows in a single serializable transaction. Ids outside the
	// facility are silently skipped.
	DeleteMany(ctx context.Context, actorID, facilityID uuid.UUID, input domain.BulkDeleteInput) (domain.BulkDeleteResult, error)
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

func (s *service) Create(ctx context.Context, actorID, facilityID uuid.UUID, input domain.CreatePlanInput) (*domain.Plan, error) {
	plan := &domain.Plan{
		ID:              uuid.New(),
		FacilityID:      facilityID,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		SessionsPerWeek: input.SessionsPerWeek,
	}
	for _, dp := range input.DiaryPlans {
		plan.DiaryPlans = append(plan.DiaryPlans, domain.DiaryPlan{
			ID:         uuid.New(),
			PlanID:     plan.ID,
			FacilityID: facilityID,
			DayOfWeek:  dp.DayOfWeek,
			Sessions:   dp.Sessions,
		})
	}

	fin := domain.FanOutInput{
		IssuerID:   actorID,
		FacilityID: facilityID,
		Type:       domain.TxPlanCreated,
		RelatedID:  &plan.ID,
	}

	err := s.txm.InTx(ctx, nil, func(r *repository.Repositories) error {
		if err := r.Plan.Create(ctx, plan); err != nil {
			return err
		}
		if err := r.Plan.InsertDiaryPlans(ctx, plan.DiaryPlans); err != nil {
			return err
		}

		if _, err := audit.Record(ctx, r.Transaction, domain.RecordTransactionInput{
			Type:        domain.TxPlanCreated,
			PerformedBy: actorID,
			FacilityID:  facilityID,
			RelatedID:   &plan.ID,
			Details:     map[string]interface{}{"name": plan.Name},
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
	return plan, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error) {
	plan, err := s.repos.Plan.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrPlanNotFound
	}

	children, err := s.repos.Plan.ListDiaryPlansByPlanIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	plan.DiaryPlans = children
	return plan, nil
}

func (s *service) List(ctx context.Context, facilityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Plan], error) {
	plans, total, err := s.repos.Plan.ListByFacility(ctx, facilityID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Plan]{}, err
	}
	return domain.NewPaginatedResponse(plans, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, actorID, facilityID, id uuid.UUID, input domain.UpdatePlanInput) (*domain.Plan, error) {
	plan, err := s.repos.Plan.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil || plan.FacilityID != facilityID {
		return nil, domain.ErrPlanNotFound
	}

	if input.Name != nil {
		plan.Name = *input.Name
	}
	if input.Description.Set {
		plan.Description = input.Description.Value
	}
	if input.Price != nil {
		plan.Price = *input.Price
	}
	if input.SessionsPerWeek != nil {
		plan.SessionsPerWeek = *input.SessionsPerWeek
	}

	fin := domain.FanOutInput{
		IssuerID:   actorID,
		FacilityID: facilityID,
		Type:       domain.TxPlanUpdated,
		RelatedID:  &plan.ID,
	}

	err = s.txm.InTx(ctx, nil, func(r *repository.Repositories) error {
		if err := r.Plan.Update(ctx, plan); err != nil {
			return err
		}

		if _, err := audit.Record(ctx, r.Transaction, domain.RecordTransactionInput{
			Type:        domain.TxPlanUpdated,
			PerformedBy: actorID,
			FacilityID:  facilityID,
			RelatedID:   &plan.ID,
			Details:     map[string]interface{}{"name": plan.Name},
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
	return plan, nil
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

		scoped, err := r.Plan.ListByIDs(ctx, input.IDs, facilityID)
		if err != nil {
			return err
		}
		if len(scoped) == 0 {
			return errNoRecords
		}

		scopedIDs := make([]uuid.UUID, len(scoped))
		for i, p := range scoped {
			scopedIDs[i] = p.ID
		}

		dependents, err := r.Plan.CountDiaryPlansByPlanIDs(ctx, scopedIDs)
		if err != nil {
			return err
		}
		if _, err := r.Plan.DeleteDiaryPlansByPlanIDs(ctx, scopedIDs); err != nil {
			return err
		}
		deleted, err := r.Plan.DeleteByIDs(ctx, scopedIDs)
		if err != nil {
			return err
		}

		for _, p := range scoped {
			id := p.ID
			if _, err := audit.Record(ctx, r.Transaction, domain.RecordTransactionInput{
				Type:        domain.TxPlanDeleted,
				PerformedBy: actorID,
				FacilityID:  facilityID,
				RelatedID:   &id,
				Details:     map[string]interface{}{"name": p.Name},
			}); err != nil {
				return err
			}
		}

		fin = domain.FanOutInput{
			IssuerID:   actorID,
			FacilityID: facilityID,
			Type:       domain.TxPlanDeleted,
		}
		if len(scoped) == 1 {
			fin.RelatedID = &scopedIDs[0]
		}
		if _, err := notification.FanOut(ctx, r.Notification, r.User, fin); err != nil {
			return err
		}

		result = domain.BulkDeleteResult{
			Success:                true,
			Message:                fmt.Sprintf("deleted %d plans and %d diary plans", deleted, dependents),
			DeletedCount:           deleted,
			DeletedDependentsCount: dependents,
		}
		return nil
	})
	if errors.Is(err, errNoRecords) {
		return domain.BulkDeleteResult{Success: false, Message: "no records found"}, nil
	}
	if err != nil {
		log.Printf("plan bulk delete rolled back: %v", err)
		return domain.BulkDeleteResult{Success: false, Message: "delete failed"}, nil
	}

	s.notifSvc.EmailFanOut(fin)
	return result, nil
}
