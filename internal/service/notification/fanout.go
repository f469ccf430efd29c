package notification

import (
	"context"

	"github.com/google/uuid"

	"gymadmin/internal/domain"
	"gymadmin/internal/repository"
)

// FanOut resolves recipients and bulk-inserts one notification row per
// recipient through the given repositories. Bind them to a transaction and
// the whole batch commits or rolls back with the caller's mutation. Zero
// recipients insert zero rows and return nil.
func FanOut(ctx context.Context, notifRepo repository.NotificationRepository, userRepo repository.UserRepository, input domain.FanOutInput) (int, error) {
	members, err := userRepo.ListFacilityMembers(ctx, input.FacilityID)
	if err != nil {
		return 0, err
	}

	recipients := ResolveRecipients(members, input.IssuerID, input.Type, input.AssignedUserIDs)
	if len(recipients) == 0 {
		return 0, nil
	}

	notifs := make([]domain.Notification, 0, len(recipients))
	for _, recipientID := range recipients {
		n := domain.Notification{
			ID:          uuid.New(),
			RecipientID: recipientID,
			IssuerID:    input.IssuerID,
			FacilityID:  input.FacilityID,
			Type:        input.Type,
		}
		if input.RelatedID != nil {
			n.SetRelation(*input.RelatedID)
		}
		notifs = append(notifs, n)
	}

	if err := notifRepo.CreateBatch(ctx, notifs); err != nil {
		return 0, err
	}
	return len(notifs), nil
}
