package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transaction is one immutable audit record. A row is written inside the
// same database transaction as the mutation it describes and is never
// updated or deleted afterwards.
type Transaction struct {
	ID          uuid.UUID       `json:"id" db:"transaction_id"`
	Type        TransactionType `json:"type" db:"type"`
	Details     json.RawMessage `json:"details" db:"details"`
	PerformedBy uuid.UUID       `json:"performed_by" db:"performed_by"`
	FacilityID  uuid.UUID       `json:"facility_id" db:"facility_id"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`

	// Polymorphic relation. At most one of these is non-nil; which one is
	// dictated by Type via RelationField.
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

type TransactionType string

const (
	TxActivityCreated    TransactionType = "ACTIVITY_CREATED"
	TxActivityUpdated    TransactionType = "ACTIVITY_UPDATED"
	TxActivityDeleted    TransactionType = "ACTIVITY_DELETED"
	TxActivityReplicated TransactionType = "ACTIVITY_REPLICATED"

	TxPlanCreated    TransactionType = "PLAN_CREATED"
	TxPlanUpdated    TransactionType = "PLAN_UPDATED"
	TxPlanDeleted    TransactionType = "PLAN_DELETED"
	TxPlanReplicated TransactionType = "PLAN_REPLICATED"

	TxDiaryCreated    TransactionType = "DIARY_CREATED"
	TxDiaryUpdated    TransactionType = "DIARY_UPDATED"
	TxDiaryDeleted    TransactionType = "DIARY_DELETED"
	TxDiaryReplicated TransactionType = "DIARY_REPLICATED"

	TxRoutineCreated    TransactionType = "ROUTINE_CREATED"
	TxRoutineUpdated    TransactionType = "ROUTINE_UPDATED"
	TxRoutineDeleted    TransactionType = "ROUTINE_DELETED"
	TxRoutineReplicated TransactionType = "ROUTINE_REPLICATED"

	TxNutritionalPlanCreated    TransactionType = "NUTRITIONAL_PLAN_CREATED"
	TxNutritionalPlanUpdated    TransactionType = "NUTRITIONAL_PLAN_UPDATED"
	TxNutritionalPlanDeleted    TransactionType = "NUTRITIONAL_PLAN_DELETED"
	TxNutritionalPlanReplicated TransactionType = "NUTRITIONAL_PLAN_REPLICATED"

	TxPresetRoutineCreated         TransactionType = "PRESET_ROUTINE_CREATED"
	TxPresetRoutineDeleted         TransactionType = "PRESET_ROUTINE_DELETED"
	TxPresetNutritionalPlanCreated TransactionType = "PRESET_NUTRITIONAL_PLAN_CREATED"
	TxPresetNutritionalPlanDeleted TransactionType = "PRESET_NUTRITIONAL_PLAN_DELETED"

	TxUserCreated TransactionType = "USER_CREATED"
	TxUserUpdated TransactionType = "USER_UPDATED"
	TxUserDeleted TransactionType = "USER_DELETED"

	TxAssignRoutineUser           TransactionType = "ASSIGN_ROUTINE_USER"
	TxUnassignRoutineUser         TransactionType = "UNASSIGN_ROUTINE_USER"
	TxAssignNutritionalPlanUser   TransactionType = "ASSIGN_NUTRITIONAL_PLAN_USER"
	TxUnassignNutritionalPlanUser TransactionType = "UNASSIGN_NUTRITIONAL_PLAN_USER"

	TxInvoiceCreated TransactionType = "INVOICE_CREATED"
	TxPaymentCreated TransactionType = "PAYMENT_CREATED"
)

// RelationField names the polymorphic column a transaction type points at.
type RelationField string

const (
	RelationActivity              RelationField = "activity_id"
	RelationPlan                  RelationField = "plan_id"
	RelationDiary                 RelationField = "diary_id"
	RelationRoutine               RelationField = "routine_id"
	RelationPresetRoutine         RelationField = "preset_routine_id"
	RelationNutritionalPlan       RelationField = "nutritional_plan_id"
	RelationPresetNutritionalPlan RelationField = "preset_nutritional_plan_id"
	RelationInvoice               RelationField = "invoice_id"
	RelationPayment               RelationField = "payment_id"
	RelationTargetUser            RelationField = "target_user_id"
)

// RelationField maps a transaction type to the single relation column it may
// populate. Audit records and notifications share this table; the two call
// sites must never diverge. Order matters: the preset and nutritional
// families are matched before the bare ROUTINE/PLAN rules they contain.
func (t TransactionType) RelationField() RelationField {
	s := string(t)
	switch {
	case strings.HasPrefix(s, "PRESET_ROUTINE"):
		return RelationPresetRoutine
	case strings.HasPrefix(s, "ROUTINE"),
		strings.HasPrefix(s, "ASSIGN_ROUTINE"),
		strings.HasPrefix(s, "UNASSIGN_ROUTINE"):
		return RelationRoutine
	case strings.HasPrefix(s, "PRESET_NUTRITIONAL"):
		return RelationPresetNutritionalPlan
	case strings.HasPrefix(s, "NUTRITIONAL_PLAN"),
		strings.HasPrefix(s, "ASSIGN_NUTRITIONAL"),
		strings.HasPrefix(s, "UNASSIGN_NUTRITIONAL"):
		return RelationNutritionalPlan
	case strings.Contains(s, "ACTIVITY"):
		return RelationActivity
	case strings.Contains(s, "DIARY"):
		return RelationDiary
	case strings.Contains(s, "INVOICE"):
		return RelationInvoice
	case strings.Contains(s, "PAYMENT"):
		return RelationPayment
	case strings.Contains(s, "PLAN"):
		return RelationPlan
	default:
		return RelationTargetUser
	}
}

// IsUserLifecycle reports whether the type belongs to the USER_* family,
// whose notifications go to admins only.
func (t TransactionType) IsUserLifecycle() bool {
	return strings.HasPrefix(string(t), "USER_")
}

// SetRelation populates the relation column selected by the transaction's
// type, leaving every other relation column nil.
func (t *Transaction) SetRelation(id uuid.UUID) {
	switch t.Type.RelationField() {
	case RelationActivity:
		t.ActivityID = &id
	case RelationPlan:
		t.PlanID = &id
	case RelationDiary:
		t.DiaryID = &id
	case RelationRoutine:
		t.RoutineID = &id
	case RelationPresetRoutine:
		t.PresetRoutineID = &id
	case RelationNutritionalPlan:
		t.NutritionalPlanID = &id
	case RelationPresetNutritionalPlan:
		t.PresetNutritionalPlanID = &id
	case RelationInvoice:
		t.InvoiceID = &id
	case RelationPayment:
		t.PaymentID = &id
	default:
		t.TargetUserID = &id
	}
}

type RecordTransactionInput struct {
	Type        TransactionType
	PerformedBy uuid.UUID
	FacilityID  uuid.UUID
	RelatedID   *uuid.UUID
	Details     interface{}
}

var emptyDetails = json.RawMessage(`{}`)

// NormalizeDetails serializes an arbitrary details payload, falling back to
// an empty object for nil, unserializable or non-object values. The audit
// trail must never be blocked by a malformed payload.
func NormalizeDetails(v interface{}) json.RawMessage {
	if v == nil {
		return emptyDetails
	}
	if raw, ok := v.(json.RawMessage); ok {
		if isJSONObject(raw) {
			return raw
		}
		return emptyDetails
	}
	data, err := json.Marshal(v)
	if err != nil || !isJSONObject(data) {
		return emptyDetails
	}
	return data
}

func isJSONObject(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}
