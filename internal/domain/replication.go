package domain

import "github.com/google/uuid"

type ReplicateInput struct {
	SourceIDs         []uuid.UUID `json:"source_ids" validate:"required,min=1"`
	TargetFacilityIDs []uuid.UUID `json:"target_facility_ids" validate:"required,min=1"`
}

// ReplicatedEntity records one (source, target) copy made by a replication
// call, mirroring the details payload of its audit row.
type ReplicatedEntity struct {
	SourceID         uuid.UUID `json:"source_id"`
	SourceName       string    `json:"source_name"`
	TargetFacilityID uuid.UUID `json:"target_facility_id"`
	ReplicaID        uuid.UUID `json:"replica_id"`
	ReplicaName      string    `json:"replica_name"`
}

type ReplicationResult struct {
	Success         bool               `json:"success"`
	Message         string             `json:"message,omitempty"`
	ReplicatedCount int                `json:"replicated_count"`
	Entities        []ReplicatedEntity `json:"entities,omitempty"`
}

type BulkDeleteInput struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

type BulkDeleteResult struct {
	Success                bool   `json:"success"`
	Message                string `json:"message,omitempty"`
	DeletedCount           int64  `json:"deleted_count"`
	DeletedDependentsCount int64  `json:"deleted_dependents_count"`
}
