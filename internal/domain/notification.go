package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one per-recipient inbox row. Rows are created only as a
// side effect of a transaction-producing operation; the recipient is never
// the issuer.
type Notification struct {
	ID          uuid.UUID       `json:"id" db:"notification_id"`
	RecipientID uuid.UUID       `json:"recipient_id" db:"recipient_id"`
	IssuerID    uuid.UUID       `json:"issuer_id" db:"issuer_id"`
	FacilityID  uuid.UUID       `json:"facility_id" db:"facility_id"`
	Type        TransactionType `json:"type" db:"type"`
	IsRead      bool            `json:"is_read" db:"is_read"`
	ReadAt      *time.Time      `json:"read_at,omitempty" db:"read_at"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`

	// Same polymorphic convention as Transaction; at most one set.
	ActivityID              *uuid.UUID `json:"activity_id,omitempty" db:"activity_id"`
	PlanID                  *uuid.UUID `json:"plan_id,omitempty" db:"plan_id"`
	DiaryID                 *uuid.UUID `json:"diary_id,omitempty" db:"diary_id"`
	RoutineID               *uuid.UUID `json:"routine_id,omitempty" db:"routine_id"`
	PresetRoutineID         *uuid.UUID `json:"preset_routine_id,omitempty" db:"preset_routine_id"`
	NutritionalPlanID       *uuid.UUID `json:"nutritional_plan_id,omitempty" db:"nutritional_plan_id"`
	PresetNutritionalPlanID *uuid.UUID `json:"preset_nutritional_plan_id,omitempty" db:"preset_nutritional_plan_id"`
	InvoiceID               *uuid.UUID `json:"invoice_id,omitempty" db:"invoice_id"`
	PaymentID               *uuid.UUID `json:"payment_id,omitempty" db:"payment_id"`
	TargetUserID            *uuid.UUID `json:"target_user_id,omitempty" db:"target_user_id"`
}

// SetRelation mirrors Transaction.SetRelation using the shared mapping.
func (n *Notification) SetRelation(id uuid.UUID) {
	switch n.Type.RelationField() {
	case RelationActivity:
		n.ActivityID = &id
	case RelationPlan:
		n.PlanID = &id
	case RelationDiary:
		n.DiaryID = &id
	case RelationRoutine:
		n.RoutineID = &id
	case RelationPresetRoutine:
		n.PresetRoutineID = &id
	case RelationNutritionalPlan:
		n.NutritionalPlanID = &id
	case RelationPresetNutritionalPlan:
		n.PresetNutritionalPlanID = &id
	case RelationInvoice:
		n.InvoiceID = &id
	case RelationPayment:
		n.PaymentID = &id
	default:
		n.TargetUserID = &id
	}
}

type FanOutInput struct {
	IssuerID        uuid.UUID
	FacilityID      uuid.UUID
	Type            TransactionType
	RelatedID       *uuid.UUID
	AssignedUserIDs []uuid.UUID
}
