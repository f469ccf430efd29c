package audit

import (
	"context"

	"github.com/google/uuid"

	"gymadmin/internal/domain"
	"gymadmin/internal/repository"
)

// Record appends one audit row through the given repository handle. Pass a
// transaction-bound repository to make the row part of the caller's
// transaction; Record itself never begins or commits anything. The details
// payload is normalized so a malformed payload can never block the trail.
func Record(ctx context.Context, repo repository.TransactionRepository, input domain.RecordTransactionInput) (*domain.Transaction, error) {
	tx := &domain.Transaction{
		ID:          uuid.New(),
		Type:        input.Type,
		Details:     domain.NormalizeDetails(input.Details),
		PerformedBy: input.PerformedBy,
		FacilityID:  input.FacilityID,
	}
	if input.RelatedID != nil {
		tx.SetRelation(*input.RelatedID)
	}

	if err := repo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Service reads the audit trail back out as a feed.
type Service interface {
	// Page returns one keyset page of the facility feed, newest first. The
	// returned cursor, fed back in, yields the next disjoint page; nil
	// means the feed is exhausted.
	Page(ctx context.Context, facilityID uuid.UUID, cursor *uuid.UUID, pageSize int) (domain.CursorPage[domain.FeedItem], error)
	GetRecent(ctx context.Context, facilityID uuid.UUID, limit int) ([]domain.Transaction, error)
}

type service struct {
	txRepo repository.TransactionRepository
}

func NewService(txRepo repository.TransactionRepository) Service {
	return &service{txRepo: txRepo}
}

func (s *service) Page(ctx context.Context, facilityID uuid.UUID, cursor *uuid.UUID, pageSize int) (domain.CursorPage[domain.FeedItem], error) {
	if pageSize <= 0 {
		pageSize = domain.DefaultFeedPageSize
	}

	// Fetch one row beyond the page; its id anchors the next page.
	items, err := s.txRepo.PageByFacility(ctx, facilityID, cursor, pageSize+1)
	if err != nil {
		return domain.CursorPage[domain.FeedItem]{}, err
	}

	page := domain.CursorPage[domain.FeedItem]{Items: items}
	if len(items) > pageSize {
		next := items[pageSize].ID
		page.Items = items[:pageSize]
		page.NextCursor = &next
	}
	if page.Items == nil {
		page.Items = []domain.FeedItem{}
	}
	return page, nil
}

func (s *service) GetRecent(ctx context.Context, facilityID uuid.UUID, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = domain.DefaultFeedPageSize
	}
	return s.txRepo.ListRecent(ctx, facilityID, limit)
}
