package facility

import (
	"context"

	"github.com/google/uuid"

	"gymadmin/internal/domain"
	"gymadmin/internal/repository"
)

// Facilities are the tenant scope itself, so their lifecycle sits outside
// the per-facility audit trail.
type Service interface {
	Create(ctx context.Context, input domain.CreateFacilityInput) (*domain.Facility, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error)
	List(ctx context.Context) ([]domain.Facility, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateFacilityInput) (*domain.Facility, error)
}

type service struct {
	facilityRepo repository.FacilityRepository
}

func NewService(facilityRepo repository.FacilityRepository) Service {
	return &service{facilityRepo: facilityRepo}
}

func (s *service) Create(ctx context.Context, input domain.CreateFacilityInput) (*domain.Facility, error) {
	facility := &domain.Facility{
		ID:       uuid.New(),
		Name:     input.Name,
		IsActive: true,
	}

	if err := s.facilityRepo.Create(ctx, facility); err != nil {
		return nil, err
	}
	return facility, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error) {
	facility, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, domain.ErrFacilityNotFound
	}
	return facility, nil
}

func (s *service) List(ctx context.Context) ([]domain.Facility, error) {
	return s.facilityRepo.List(ctx)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateFacilityInput) (*domain.Facility, error) {
	facility, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, domain.ErrFacilityNotFound
	}

	if input.Name != nil {
		facility.Name = *input.Name
	}
	if input.IsActive != nil {
		facility.IsActive = *input.IsActive
	}

	if err := s.facilityRepo.Update(ctx, facility); err != nil {
		return nil, err
	}
	return facility, nil
}
