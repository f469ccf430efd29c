package replication

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"gymadmin/internal/domain"
	"gymadmin/internal/repository"
	"gymadmin/internal/service/audit"
	"gymadmin/internal/service/notification"
)

// errNoSources aborts the transaction before any write happens.
var errNoSources = errors.New("replication: no source records")

// Service copies facility-scoped entities into other facilities. Each call
// runs as a single transaction: every replica, audit row and notification of
// the call commits together or not at all.
type Service interface {
	ReplicateActivities(ctx context.Context, actorID, facilityID uuid.UUID, input domain.ReplicateInput) (domain.ReplicationResult, error)
	ReplicatePlans(ctx context.Context, actorID, facilityID uuid.UUID, input domain.ReplicateInput) (domain.ReplicationResult, error)
	ReplicateRoutines(ctx context.Context, actorID, facilityID uuid.UUID, input domain.ReplicateInput) (domain.ReplicationResult, error)
	ReplicateNutritionalPlans(ctx context.Context, actorID, facilityID uuid.UUID, input domain.ReplicateInput) (domain.ReplicationResult, error)
	ReplicateDiaries(ctx context.Context, actorID, facilityID uuid.UUID, input domain.ReplicateInput) (domain.ReplicationResult, error)
}

type service struct {
	txm      repository.TxManager
	notifSvc notification.Service
}

func NewService(txm repository.TxManager, notifSvc notification.Service) Service {
	return &service{txm: txm, notifSvc: notifSvc}
}

func (s *service) ReplicateActivities(ctx context.Context, actorID, facilityID uuid.UUID, input domain.ReplicateInput) (domain.ReplicationResult, error) {
	var (
		result  domain.ReplicationResult
		fanOuts []domain.FanOutInput
	)

	err := s.txm.InTx(ctx, nil, func(r *repository.Repositories) error {
		sources, err := r.Activity.ListByIDs(ctx, input.SourceIDs, facilityID)
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			return errNoSources
		}

		sourceIDs := make([]uuid.UUID, len(sources))
		for i, src := range sources {
			sourceIDs[i] = src.ID
		}
		staffRows, err := r.Activity.ListStaffByActivityIDs(ctx, sourceIDs)
		if err != nil {
			return err
		}
		staffBySource := make(map[uuid.UUID][]uuid.UUID)
		for _, row := range staffRows {
			staffBySource[row.ActivityID] = append(staffBySource[row.ActivityID], row.UserID)
		}

		for _, targetID := range dedup(input.TargetFacilityIDs) {
			// Staff references are facility-scoped: only assignments whose
			// user is also STAFF in the target facility carry over.
			targetStaff, err := r.User.ListStaffIDs(ctx, targetID)
			if err != nil {
				return err
			}
			targetStaffSet := make(map[uuid.UUID]bool, len(targetStaff))
			for _, id := range targetStaff {
				targetStaffSet[id] = true
			}

			var relatedID *uuid.UUID
			for _, src := range sources {
				replica := domain.Activity{
					ID:          uuid.New(),
					FacilityID:  targetID,
					Name:        src.Name,
					Description: src.Description,
					MaxCapacity: src.MaxCapacity,
				}
				if err := r.Activity.Create(ctx, &replica); err != nil {
					return err
				}

				var remapped []domain.ActivityStaff
				for _, userID := range staffBySource[src.ID] {
					if targetStaffSet[userID] {
						remapped = append(remapped, domain.ActivityStaff{
							ActivityID: replica.ID,
							UserID:     userID,
							FacilityID: targetID,
						})
					}
				}
				if err := r.Activity.InsertStaff(ctx, remapped); err != nil {
					return err
				}

				entity := replicatedEntity(src.ID, src.Name, targetID, replica.ID, replica.Name)
				if err := recordReplication(ctx, r.Transaction, domain.TxActivityReplicated, actorID, facilityID, entity); err != nil {
					return err
				}
				result.Entities = append(result.Entities, entity)
			}
			if len(sources) == 1 {
				relatedID = &result.Entities[len(result.Entities)-1].ReplicaID
			}

			fin := domain.FanOutInput{
				IssuerID:   actorID,
				FacilityID: targetID,
				Type:       domain.TxActivityReplicated,
				RelatedID:  relatedID,
			}
			if _, err := notification.FanOut(ctx, r.Notification, r.User, fin); err != nil {
				return err
			}
			fanOuts = append(fanOuts, fin)
		}

		result.Success = true
		result.ReplicatedCount = len(result.Entities)
		result.Message = replicatedMessage(len(sources), len(fanOuts))
		return nil
	})

	return s.finish(err, result, fanOuts)
}

func (s *service) ReplicatePlans(ctx context.Context, actorID, facilityID uuid.UUID, input domain.ReplicateInput) (domain.ReplicationResult, error) {
	var (
		result  domain.ReplicationResult
		fanOuts []domain.FanOutInput
	)

	err := s.txm.InTx(ctx, nil, func(r *repository.Repositories) error {
		sources, err := r.Plan.ListByIDs(ctx, input.SourceIDs, facilityID)
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			return errNoSources
		}

		sourceIDs := make([]uuid.UUID, len(sources))
		for i, src := range sources {
			sourceIDs[i] = src.ID
		}
		diaryPlans, err := r.Plan.ListDiaryPlansByPlanIDs(ctx, sourceIDs)
		if err != nil {
			return err
		}
		childrenBySource := make(map[uuid.UUID][]domain.DiaryPlan)
		for _, dp := range diaryPlans {
			childrenBySource[dp.PlanID] = append(childrenBySource[dp.PlanID], dp)
		}

		for _, targetID := range dedup(input.TargetFacilityIDs) {
			var relatedID *uuid.UUID
			for _, src := range sources {
				replica := domain.Plan{
					ID:              uuid.New(),
					FacilityID:      targetID,
					Name:            src.Name,
					Description:     src.Description,
					Price:           src.Price,
					SessionsPerWeek: src.SessionsPerWeek,
				}
				if err := r.Plan.Create(ctx, &replica); err != nil {
					return err
				}

				var children []domain.DiaryPlan
				for _, dp := range childrenBySource[src.ID] {
					children = append(children, domain.DiaryPlan{
						ID:         uuid.New(),
						PlanID:     replica.ID,
						FacilityID: targetID,
						DayOfWeek:  dp.DayOfWeek,
						Sessions:   dp.Sessions,
					})
				}
				if err := r.Plan.InsertDiaryPlans(ctx, children); err != nil {
					return err
				}

				entity := replicatedEntity(src.ID, src.Name, targetID, replica.ID, replica.Name)
				if err := recordReplication(ctx, r.Transaction, domain.TxPlanReplicated, actorID, facilityID, entity); err != nil {
					return err
				}
				result.Entities = append(result.Entities, entity)
			}
			if len(sources) == 1 {
				relatedID = &result.Entities[len(result.Entities)-1].ReplicaID
			}

			fin := domain.FanOutInput{
				IssuerID:   actorID,
				FacilityID: targetID,
				Type:       domain.TxPlanReplicated,
				RelatedID:  relatedID,
			}
			if _, err := notification.FanOut(ctx, r.Notification, r.User, fin); err != nil {
				return err
			}
			fanOuts = append(fanOuts, fin)
		}

		result.Success = true
		result.ReplicatedCount = len(result.Entities)
		result.Message = replicatedMessage(len(sources), len(fanOuts))
		return nil
	})

	return s.finish(err, result, fanOuts)
}

func (s *service) ReplicateRoutines(ctx context.Context, actorID, facilityID uuid.UUID, input domain.ReplicateInput) (domain.ReplicationResult, error) {
	var (
		result  domain.ReplicationResult
		fanOuts []domain.FanOutInput
	)

	err := s.txm.InTx(ctx, nil, func(r *repository.Repositories) error {
		sources, err := r.Routine.ListByIDs(ctx, input.SourceIDs, facilityID)
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			return errNoSources
		}

		for _, targetID := range dedup(input.TargetFacilityIDs) {
			var relatedID *uuid.UUID
			for _, src := range sources {
				replica := domain.Routine{
					ID:          uuid.New(),
					FacilityID:  targetID,
					Name:        src.Name,
					Description: src.Description,
					Difficulty:  src.Difficulty,
					Exercises:   src.Exercises,
				}
				if err := r.Routine.Create(ctx, &replica); err != nil {
					return err
				}

				entity := replicatedEntity(src.ID, src.Name, targetID, replica.ID, replica.Name)
				if err := recordReplication(ctx, r.Transaction, domain.TxRoutineReplicated, actorID, facilityID, entity); err != nil {
					return err
				}
				result.Entities = append(result.Entities, entity)
			}
			if len(sources) == 1 {
				relatedID = &result.Entities[len(result.Entities)-1].ReplicaID
			}

			fin := domain.FanOutInput{
				IssuerID:   actorID,
				FacilityID: targetID,
				Type:       domain.TxRoutineReplicated,
				RelatedID:  relatedID,
			}
			if _, err := notification.FanOut(ctx, r.Notification, r.User, fin); err != nil {
				return err
			}
			fanOuts = append(fanOuts, fin)
		}

		result.Success = true
		result.ReplicatedCount = len(result.Entities)
		result.Message = replicatedMessage(len(sources), len(fanOuts))
		return nil
	})

	return s.finish(err, result, fanOuts)
}

func (s *service) ReplicateNutritionalPlans(ctx context.Context, actorID, facilityID uuid.UUID, input domain.ReplicateInput) (domain.ReplicationResult, error) {
	var (
		result  domain.ReplicationResult
		fanOuts []domain.FanOutInput
	)

	err := s.txm.InTx(ctx, nil, func(r *repository.Repositories) error {
		sources, err := r.NutritionalPlan.ListByIDs(ctx, input.SourceIDs, facilityID)
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			return errNoSources
		}

		for _, targetID := range dedup(input.TargetFacilityIDs) {
			var relatedID *uuid.UUID
			for _, src := range sources {
				replica := domain.NutritionalPlan{
					ID:          uuid.New(),
					FacilityID:  targetID,
					Name:        src.Name,
					Description: src.Description,
					Meals:       src.Meals,
				}
				if err := r.NutritionalPlan.Create(ctx, &replica); err != nil {
					return err
				}

				entity := replicatedEntity(src.ID, src.Name, targetID, replica.ID, replica.Name)
				if err := recordReplication(ctx, r.Transaction, domain.TxNutritionalPlanReplicated, actorID, facilityID, entity); err != nil {
					return err
				}
				result.Entities = append(result.Entities, entity)
			}
			if len(sources) == 1 {
				relatedID = &result.Entities[len(result.Entities)-1].ReplicaID
			}

			fin := domain.FanOutInput{
				IssuerID:   actorID,
				FacilityID: targetID,
				Type:       domain.TxNutritionalPlanReplicated,
				RelatedID:  relatedID,
			}
			if _, err := notification.FanOut(ctx, r.Notification, r.User, fin); err != nil {
				return err
			}
			fanOuts = append(fanOuts, fin)
		}

		result.Success = true
		result.ReplicatedCount = len(result.Entities)
		result.Message = replicatedMessage(len(sources), len(fanOuts))
		return nil
	})

	return s.finish(err, result, fanOuts)
}

func (s *service) ReplicateDiaries(ctx context.Context, actorID, facilityID uuid.UUID, input domain.ReplicateInput) (domain.ReplicationResult, error) {
	var (
		result  domain.ReplicationResult
		fanOuts []domain.FanOutInput
	)

	err := s.txm.InTx(ctx, nil, func(r *repository.Repositories) error {
		sources, err := r.Diary.ListByIDs(ctx, input.SourceIDs, facilityID)
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			return errNoSources
		}

		for _, targetID := range dedup(input.TargetFacilityIDs) {
			var relatedID *uuid.UUID
			for _, src := range sources {
				// The parent activity lives in the source facility, so the
				// reference is dropped on the replica.
				replica := domain.Diary{
					ID:         uuid.New(),
					FacilityID: targetID,
					Name:       src.Name,
					DayOfWeek:  src.DayOfWeek,
					StartTime:  src.StartTime,
					EndTime:    src.EndTime,
					Capacity:   src.Capacity,
				}
				if err := r.Diary.Create(ctx, &replica); err != nil {
					return err
				}

				entity := replicatedEntity(src.ID, src.Name, targetID, replica.ID, replica.Name)
				if err := recordReplication(ctx, r.Transaction, domain.TxDiaryReplicated, actorID, facilityID, entity); err != nil {
					return err
				}
				result.Entities = append(result.Entities, entity)
			}
			if len(sources) == 1 {
				relatedID = &result.Entities[len(result.Entities)-1].ReplicaID
			}

			fin := domain.FanOutInput{
				IssuerID:   actorID,
				FacilityID: targetID,
				Type:       domain.TxDiaryReplicated,
				RelatedID:  relatedID,
			}
			if _, err := notification.FanOut(ctx, r.Notification, r.User, fin); err != nil {
				return err
			}
			fanOuts = append(fanOuts, fin)
		}

		result.Success = true
		result.ReplicatedCount = len(result.Entities)
		result.Message = replicatedMessage(len(sources), len(fanOuts))
		return nil
	})

	return s.finish(err, result, fanOuts)
}

// finish converts transaction outcomes into the caller-facing result and,
// on commit, kicks off the email side channel.
func (s *service) finish(err error, result domain.ReplicationResult, fanOuts []domain.FanOutInput) (domain.ReplicationResult, error) {
	if errors.Is(err, errNoSources) {
		return domain.ReplicationResult{Success: false, Message: "no records found"}, nil
	}
	if err != nil {
		log.Printf("replication rolled back: %v", err)
		return domain.ReplicationResult{Success: false, Message: "replication failed"}, nil
	}

	if s.notifSvc != nil {
		for _, fin := range fanOuts {
			s.notifSvc.EmailFanOut(fin)
		}
	}
	return result, nil
}

// recordReplication writes one audit row per (source, target) pair against
// the source facility.
func recordReplication(ctx context.Context, txRepo repository.TransactionRepository, txType domain.TransactionType, actorID, facilityID uuid.UUID, entity domain.ReplicatedEntity) error {
	sourceID := entity.SourceID
	_, err := audit.Record(ctx, txRepo, domain.RecordTransactionInput{
		Type:        txType,
		PerformedBy: actorID,
		FacilityID:  facilityID,
		RelatedID:   &sourceID,
		Details: map[string]interface{}{
			"source_id":          entity.SourceID,
			"source_name":        entity.SourceName,
			"target_facility_id": entity.TargetFacilityID,
			"replica_id":         entity.ReplicaID,
			"replica_name":       entity.ReplicaName,
		},
	})
	return err
}

func replicatedEntity(sourceID uuid.UUID, sourceName string, targetID, replicaID uuid.UUID, replicaName string) domain.ReplicatedEntity {
	return domain.ReplicatedEntity{
		SourceID:         sourceID,
		SourceName:       sourceName,
		TargetFacilityID: targetID,
		ReplicaID:        replicaID,
		ReplicaName:      replicaName,
	}
}

func replicatedMessage(sources, targets int) string {
	return fmt.Sprintf("replicated %d records to %d facilities", sources, targets)
}

func dedup(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
