package user

import (
	"context"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gymadmin/internal/domain"
	"gymadmin/internal/repository"
	"gymadmin/internal/service/audit"
	"gymadmin/internal/service/email"
	"gymadmin/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, input domain.CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, actorID, facilityID, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actorID, facilityID, id uuid.UUID) error
	AssignRole(ctx context.Context, actorID, facilityID uuid.UUID, input domain.AssignRoleInput) error
	AddMembership(ctx context.Context, facilityID, userID uuid.UUID) error
	RemoveMembership(ctx context.Context, facilityID, userID uuid.UUID) error
	ListMembers(ctx context.Context, facilityID uuid.UUID) ([]domain.FacilityMember, error)
}

type service struct {
	repos    *repository.Repositories
	txm      repository.TxManager
	notifSvc notification.Service
	emailSvc email.Service
}

func NewService(repos *repository.Repositories, txm repository.TxManager, notifSvc notification.Service, emailSvc email.Service) Service {
	return &service{repos: repos, txm: txm, notifSvc: notifSvc, emailSvc: emailSvc}
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input domain.CreateUserInput) (*domain.User, error) {
	exists, err := s.repos.User.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hashed),
		FullName:     input.FullName,
		Role:         input.Role,
		IsActive:     true,
	}

	fin := domain.FanOutInput{
		IssuerID:   actorID,
		FacilityID: input.FacilityID,
		Type:       domain.TxUserCreated,
		RelatedID:  &user.ID,
	}

	err = s.txm.InTx(ctx, nil, func(r *repository.Repositories) error {
		if err := r.User.Create(ctx, user); err != nil {
			return err
		}
		if err := r.User.AddMembership(ctx, input.FacilityID, user.ID); err != nil {
			return err
		}

		if _, err := audit.Record(ctx, r.Transaction, domain.RecordTransactionInput{
			Type:        domain.TxUserCreated,
			PerformedBy: actorID,
			FacilityID:  input.FacilityID,
			RelatedID:   &user.ID,
			Details:     map[string]interface{}{"full_name": user.FullName, "role": user.Role},
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
	s.sendWelcomeEmail(user, input.FacilityID)
	return user, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *service) Update(ctx context.Context, actorID, facilityID, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.repos.User.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrEmailTaken
		}
		user.Email = *input.Email
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}
	if input.AvatarURL.Set {
		user.AvatarURL = input.AvatarURL.Value
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	fin := domain.FanOutInput{
		IssuerID:   actorID,
		FacilityID: facilityID,
		Type:       domain.TxUserUpdated,
		RelatedID:  &user.ID,
	}

	err = s.txm.InTx(ctx, nil, func(r *repository.Repositories) error {
		if err := r.User.Update(ctx, user); err != nil {
			return err
		}

		if _, err := audit.Record(ctx, r.Transaction, domain.RecordTransactionInput{
			Type:        domain.TxUserUpdated,
			PerformedBy: actorID,
			FacilityID:  facilityID,
			RelatedID:   &user.ID,
			Details:     map[string]interface{}{"full_name": user.FullName},
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
	return user, nil
}

func (s *service) Delete(ctx context.Context, actorID, facilityID, id uuid.UUID) error {
	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	fin := domain.FanOutInput{
		IssuerID:   actorID,
		FacilityID: facilityID,
		Type:       domain.TxUserDeleted,
		RelatedID:  &user.ID,
	}

	err = s.txm.InTx(ctx, nil, func(r *repository.Repositories) error {
		if err := r.User.Delete(ctx, id); err != nil {
			return err
		}
		if err := r.User.RemoveMembership(ctx, facilityID, id); err != nil {
			return err
		}

		if _, err := audit.Record(ctx, r.Transaction, domain.RecordTransactionInput{
			Type:        domain.TxUserDeleted,
			PerformedBy: actorID,
			FacilityID:  facilityID,
			RelatedID:   &user.ID,
			Details:     map[string]interface{}{"full_name": user.FullName},
		}); err != nil {
			return err
		}

		_, err := notification.FanOut(ctx, r.Notification, r.User, fin)
		return err
	})
	if err != nil {
		return err
	}

	s.notifSvc.EmailFanOut(fin)
	return nil
}

func (s *service) AssignRole(ctx context.Context, actorID, facilityID uuid.UUID, input domain.AssignRoleInput) error {
	fin := domain.FanOutInput{
		IssuerID:   actorID,
		FacilityID: facilityID,
		Type:       domain.TxUserUpdated,
		RelatedID:  &input.UserID,
	}

	err := s.txm.InTx(ctx, nil, func(r *repository.Repositories) error {
		if err := r.User.AssignRole(ctx, input.UserID, input.Role); err != nil {
			return err
		}

		if _, err := audit.Record(ctx, r.Transaction, domain.RecordTransactionInput{
			Type:        domain.TxUserUpdated,
			PerformedBy: actorID,
			FacilityID:  facilityID,
			RelatedID:   &input.UserID,
			Details:     map[string]interface{}{"role": input.Role},
		}); err != nil {
			return err
		}

		_, err := notification.FanOut(ctx, r.Notification, r.User, fin)
		return err
	})
	if err != nil {
		return err
	}

	s.notifSvc.EmailFanOut(fin)
	return nil
}

func (s *service) AddMembership(ctx context.Context, facilityID, userID uuid.UUID) error {
	return s.repos.User.AddMembership(ctx, facilityID, userID)
}

func (s *service) RemoveMembership(ctx context.Context, facilityID, userID uuid.UUID) error {
	return s.repos.User.RemoveMembership(ctx, facilityID, userID)
}

func (s *service) ListMembers(ctx context.Context, facilityID uuid.UUID) ([]domain.FacilityMember, error) {
	return s.repos.User.ListFacilityMembers(ctx, facilityID)
}

func (s *service) sendWelcomeEmail(user *domain.User, facilityID uuid.UUID) {
	if s.emailSvc == nil {
		return
	}

	go func() {
		ctx := context.Background()

		facilityName := "your facility"
		if facility, err := s.repos.Facility.GetByID(ctx, facilityID); err == nil && facility != nil {
			facilityName = facility.Name
		}

		if err := s.emailSvc.SendWelcomeEmail(ctx, user.Email, user.FullName, facilityName); err != nil {
			log.Printf("welcome email to %s failed: %v", user.Email, err)
		}
	}()
}
