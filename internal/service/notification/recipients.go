package notification

import (
	"github.com/google/uuid"

	"gymadmin/internal/domain"
)

// ResolveRecipients computes who gets notified for one operation. It is the
// single place recipient eligibility is decided; orchestrators must not
// re-derive it.
//
// Default set: facility members minus clients minus the issuer. USER_*
// lifecycle types narrow the set to admin-level members. Explicitly
// assigned user ids (routine/plan assignments) are unioned in even when
// they are clients; the issuer stays excluded throughout.
func ResolveRecipients(members []domain.FacilityMember, issuerID uuid.UUID, txType domain.TransactionType, assignedUserIDs []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(members)+len(assignedUserIDs))
	recipients := make([]uuid.UUID, 0, len(members)+len(assignedUserIDs))

	adminsOnly := txType.IsUserLifecycle()

	for _, m := range members {
		if m.UserID == issuerID {
			continue
		}
		if adminsOnly {
			if !m.Role.IsAdminLevel() {
				continue
			}
		} else if !m.Role.IsStaffLevel() {
			continue
		}
		if _, ok := seen[m.UserID]; ok {
			continue
		}
		seen[m.UserID] = struct{}{}
		recipients = append(recipients, m.UserID)
	}

	for _, id := range assignedUserIDs {
		if id == issuerID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		recipients = append(recipients, id)
	}

	return recipients
}
