package unit_test

import (
	"testing"

	"gymadmin/internal/domain"
	"gymadmin/internal/service/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolveRecipients(t *testing.T) {
	issuerID := uuid.New()
	adminID := uuid.New()
	staffID := uuid.New()
	clientID := uuid.New()

	members := []domain.FacilityMember{
		{UserID: issuerID, Role: domain.RoleAdmin},
		{UserID: adminID, Role: domain.RoleAdmin},
		{UserID: staffID, Role: domain.RoleStaff},
		{UserID: clientID, Role: domain.RoleClient},
	}

	t.Run("Default Excludes Issuer And Clients", func(t *testing.T) {
		recipients := notification.ResolveRecipients(members, issuerID, domain.TxActivityCreated, nil)

		assert.ElementsMatch(t, []uuid.UUID{adminID, staffID}, recipients)
	})

	t.Run("User Lifecycle Narrows To Admins", func(t *testing.T) {
		recipients := notification.ResolveRecipients(members, issuerID, domain.TxUserCreated, nil)

		assert.Equal(t, []uuid.UUID{adminID}, recipients)
	})

	t.Run("Assigned Users Unioned In Even When Clients", func(t *testing.T) {
		recipients := notification.ResolveRecipients(members, issuerID, domain.TxAssignRoutineUser, []uuid.UUID{clientID})

		assert.ElementsMatch(t, []uuid.UUID{adminID, staffID, clientID}, recipients)
	})

	t.Run("Assigned Issuer Still Excluded", func(t *testing.T) {
		recipients := notification.ResolveRecipients(members, issuerID, domain.TxAssignRoutineUser, []uuid.UUID{issuerID, clientID})

		assert.NotContains(t, recipients, issuerID)
		assert.Contains(t, recipients, clientID)
	})

	t.Run("Assigned Users Deduplicated", func(t *testing.T) {
		recipients := notification.ResolveRecipients(members, issuerID, domain.TxAssignRoutineUser, []uuid.UUID{staffID, clientID, clientID})

		assert.ElementsMatch(t, []uuid.UUID{adminID, staffID, clientID}, recipients)
	})

	t.Run("No Eligible Members", func(t *testing.T) {
		onlyIssuer := []domain.FacilityMember{
			{UserID: issuerID, Role: domain.RoleAdmin},
			{UserID: clientID, Role: domain.RoleClient},
		}

		recipients := notification.ResolveRecipients(onlyIssuer, issuerID, domain.TxActivityCreated, nil)

		assert.Empty(t, recipients)
	})
}
