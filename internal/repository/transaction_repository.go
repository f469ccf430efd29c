package repository

import (
	"context"

	"github.com/google/uuid"

	"gymadmin/internal/domain"
)

type TransactionRepository interface {
	// Create appends one audit row. It never opens its own transaction;
	// atomicity is inherited from the Querier the repository is bound to.
	Create(ctx context.Context, tx *domain.Transaction) error

	// PageByFacility returns up to limit feed rows in reverse chronological
	// order. A non-nil cursor anchors the page at that row, inclusive.
	PageByFacility(ctx context.Context, facilityID uuid.UUID, cursor *uuid.UUID, limit int) ([]domain.FeedItem, error)

	ListRecent(ctx context.Context, facilityID uuid.UUID, limit int) ([]domain.Transaction, error)
}

type transactionRepository struct {
	db Querier
}

func NewTransactionRepository(db Querier) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			transaction_id, type, details, performed_by, facility_id,
			activity_id, plan_id, diary_id, routine_id, preset_routine_id,
			nutritional_plan_id, preset_nutritional_plan_id, invoice_id, payment_id, target_user_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		tx.ID, tx.Type, tx.Details, tx.PerformedBy, tx.FacilityID,
		tx.ActivityID, tx.PlanID, tx.DiaryID, tx.RoutineID, tx.PresetRoutineID,
		tx.NutritionalPlanID, tx.PresetNutritionalPlanID, tx.InvoiceID, tx.PaymentID, tx.TargetUserID,
	).Scan(&tx.CreatedAt)
}

const feedSelect = `
	SELECT t.*,
		u.full_name AS performer_name,
		u.avatar_url AS performer_avatar,
		COALESCE(a.name, p.name, rt.name, np.name, d.name, tu.full_name) AS related_name
	FROM transactions t
	JOIN users u ON u.user_id = t.performed_by
	LEFT JOIN activities a ON a.activity_id = t.activity_id
	LEFT JOIN plans p ON p.plan_id = t.plan_id
	LEFT JOIN routines rt ON rt.routine_id = t.routine_id
	LEFT JOIN nutritional_plans np ON np.nutritional_plan_id = t.nutritional_plan_id
	LEFT JOIN diaries d ON d.diary_id = t.diary_id
	LEFT JOIN users tu ON tu.user_id = t.target_user_id
	WHERE t.facility_id = $1`

func (r *transactionRepository) PageByFacility(ctx context.Context, facilityID uuid.UUID, cursor *uuid.UUID, limit int) ([]domain.FeedItem, error) {
	query := feedSelect
	args := []interface{}{facilityID, limit}

	if cursor != nil {
		query += `
	AND (t.created_at, t.transaction_id) <= (
		SELECT created_at, transaction_id FROM transactions WHERE transaction_id = $3
	)`
		args = append(args, *cursor)
	}

	query += `
	ORDER BY t.created_at DESC, t.transaction_id DESC
	LIMIT $2`

	var items []domain.FeedItem
	err := r.db.SelectContext(ctx, &items, query, args...)
	return items, err
}

func (r *transactionRepository) ListRecent(ctx context.Context, facilityID uuid.UUID, limit int) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	query := `
		SELECT * FROM transactions
		WHERE facility_id = $1
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $2`

	err := r.db.SelectContext(ctx, &txs, query, facilityID, limit)
	return txs, err
}
