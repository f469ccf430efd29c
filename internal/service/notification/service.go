package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"gymadmin/internal/domain"
	"gymadmin/internal/repository"
	"gymadmin/internal/service/email"
)

const unreadCountTTL = 5 * time.Minute

// Service is the inbox surface plus the post-commit email side channel.
// The transactional fan-out itself is the package-level FanOut, which
// orchestrators call with tx-bound repositories.
type Service interface {
	List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error
	GetUnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)

	// EmailFanOut re-resolves recipients and sends best-effort emails in the
	// background. Call it only after the owning transaction committed.
	EmailFanOut(input domain.FanOutInput)
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	emailSvc  email.Service
	redis     *redis.Client
}

func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, emailSvc email.Service, redisClient *redis.Client) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		emailSvc:  emailSvc,
		redis:     redisClient,
	}
}

func (s *service) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByRecipient(ctx, recipientID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) error {
	if err := s.notifRepo.MarkAsRead(ctx, id, recipientID); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, recipientID)
	return nil
}

func (s *service) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	if err := s.notifRepo.MarkAllAsRead(ctx, recipientID); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, recipientID)
	return nil
}

func (s *service) GetUnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	key := unreadCountKey(recipientID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Int64(); err == nil {
			return cached, nil
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		s.redis.Set(ctx, key, count, unreadCountTTL)
	}
	return count, nil
}

func (s *service) EmailFanOut(input domain.FanOutInput) {
	if s.emailSvc == nil {
		return
	}

	go func() {
		ctx := context.Background()

		members, err := s.userRepo.ListFacilityMembers(ctx, input.FacilityID)
		if err != nil {
			log.Printf("notification email fan-out: list members: %v", err)
			return
		}

		issuer, err := s.userRepo.GetByID(ctx, input.IssuerID)
		if err != nil || issuer == nil {
			log.Printf("notification email fan-out: issuer %s not found", input.IssuerID)
			return
		}

		recipients := ResolveRecipients(members, input.IssuerID, input.Type, input.AssignedUserIDs)
		byID := make(map[uuid.UUID]domain.FacilityMember, len(members))
		for _, m := range members {
			byID[m.UserID] = m
		}

		subject := subjectFor(input.Type)
		message := messageFor(input.Type, issuer.FullName)

		for _, recipientID := range recipients {
			member, ok := byID[recipientID]
			if !ok || member.Email == "" {
				continue
			}
			if err := s.emailSvc.SendNotificationEmail(ctx, member.Email, member.FullName, subject, message); err != nil {
				log.Printf("notification email to %s failed: %v", member.Email, err)
			}
			s.invalidateUnreadCount(ctx, recipientID)
		}
	}()
}

func (s *service) invalidateUnreadCount(ctx context.Context, recipientID uuid.UUID) {
	if s.redis != nil {
		s.redis.Del(ctx, unreadCountKey(recipientID))
	}
}

func unreadCountKey(recipientID uuid.UUID) string {
	return fmt.Sprintf("notif:unread:%s", recipientID)
}
