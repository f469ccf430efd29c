package unit_test

import (
	"encoding/json"
	"testing"

	"gymadmin/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTransactionType_RelationField(t *testing.T) {
	cases := []struct {
		txType domain.TransactionType
		field  domain.RelationField
	}{
		{domain.TxActivityCreated, domain.RelationActivity},
		{domain.TxActivityReplicated, domain.RelationActivity},
		{domain.TxDiaryDeleted, domain.RelationDiary},
		{domain.TxPlanUpdated, domain.RelationPlan},
		{domain.TxRoutineCreated, domain.RelationRoutine},
		{domain.TxRoutineReplicated, domain.RelationRoutine},
		{domain.TxAssignRoutineUser, domain.RelationRoutine},
		{domain.TxUnassignRoutineUser, domain.RelationRoutine},
		{domain.TxPresetRoutineCreated, domain.RelationPresetRoutine},
		{domain.TxNutritionalPlanDeleted, domain.RelationNutritionalPlan},
		{domain.TxAssignNutritionalPlanUser, domain.RelationNutritionalPlan},
		{domain.TxPresetNutritionalPlanDeleted, domain.RelationPresetNutritionalPlan},
		{domain.TxInvoiceCreated, domain.RelationInvoice},
		{domain.TxPaymentCreated, domain.RelationPayment},
		{domain.TxUserCreated, domain.RelationTargetUser},
		{domain.TxUserDeleted, domain.RelationTargetUser},
	}

	for _, tc := range cases {
		t.Run(string(tc.txType), func(t *testing.T) {
			assert.Equal(t, tc.field, tc.txType.RelationField())
		})
	}
}

func TestTransaction_SetRelation(t *testing.T) {
	relatedID := uuid.New()

	t.Run("Populates Only The Column For The Type", func(t *testing.T) {
		tx := &domain.Transaction{Type: domain.TxPlanDeleted}
		tx.SetRelation(relatedID)

		assert.Equal(t, relatedID, *tx.PlanID)
		assert.Nil(t, tx.ActivityID)
		assert.Nil(t, tx.DiaryID)
		assert.Nil(t, tx.RoutineID)
		assert.Nil(t, tx.NutritionalPlanID)
		assert.Nil(t, tx.TargetUserID)
	})

	t.Run("User Types Target The User Column", func(t *testing.T) {
		tx := &domain.Transaction{Type: domain.TxUserUpdated}
		tx.SetRelation(relatedID)

		assert.Equal(t, relatedID, *tx.TargetUserID)
		assert.Nil(t, tx.PlanID)
	})

	t.Run("Notification Uses The Same Mapping", func(t *testing.T) {
		n := &domain.Notification{Type: domain.TxAssignNutritionalPlanUser}
		n.SetRelation(relatedID)

		assert.Equal(t, relatedID, *n.NutritionalPlanID)
		assert.Nil(t, n.RoutineID)
		assert.Nil(t, n.TargetUserID)
	})
}

func TestTransactionType_IsUserLifecycle(t *testing.T) {
	assert.True(t, domain.TxUserCreated.IsUserLifecycle())
	assert.True(t, domain.TxUserDeleted.IsUserLifecycle())
	assert.False(t, domain.TxRoutineCreated.IsUserLifecycle())
	assert.False(t, domain.TxAssignRoutineUser.IsUserLifecycle())
}

func TestNormalizeDetails(t *testing.T) {
	t.Run("Nil Becomes Empty Object", func(t *testing.T) {
		assert.JSONEq(t, `{}`, string(domain.NormalizeDetails(nil)))
	})

	t.Run("Map Serializes", func(t *testing.T) {
		raw := domain.NormalizeDetails(map[string]interface{}{"name": "Spinning"})

		assert.JSONEq(t, `{"name":"Spinning"}`, string(raw))
	})

	t.Run("Raw Object Passes Through", func(t *testing.T) {
		raw := domain.NormalizeDetails(json.RawMessage(`{"count": 3}`))

		assert.JSONEq(t, `{"count":3}`, string(raw))
	})

	t.Run("Raw Array Falls Back", func(t *testing.T) {
		assert.JSONEq(t, `{}`, string(domain.NormalizeDetails(json.RawMessage(`[1,2]`))))
	})

	t.Run("Invalid Raw Falls Back", func(t *testing.T) {
		assert.JSONEq(t, `{}`, string(domain.NormalizeDetails(json.RawMessage(`{"broken`))))
	})

	t.Run("Unserializable Value Falls Back", func(t *testing.T) {
		assert.JSONEq(t, `{}`, string(domain.NormalizeDetails(map[string]interface{}{"fn": func() {}})))
	})

	t.Run("Non Object Scalar Falls Back", func(t *testing.T) {
		assert.JSONEq(t, `{}`, string(domain.NormalizeDetails("just a string")))
	})
}
