package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Querier is the subset of sqlx shared by *sqlx.DB and *sqlx.Tx. Every
// repository runs against a Querier, so the same repository code serves
// both standalone calls and transaction-scoped orchestrations.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type Repositories struct {
	db *sqlx.DB
	q  Querier

	Facility        FacilityRepository
	User            UserRepository
	Activity        ActivityRepository
	Diary           DiaryRepository
	Plan            PlanRepository
	Routine         RoutineRepository
	NutritionalPlan NutritionalPlanRepository
	Transaction     TransactionRepository
	Notification    NotificationRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	repos := bind(db)
	repos.db = db
	return repos
}

func bind(q Querier) *Repositories {
	return &Repositories{
		q:               q,
		Facility:        NewFacilityRepository(q),
		User:            NewUserRepository(q),
		Activity:        NewActivityRepository(q),
		Diary:           NewDiaryRepository(q),
		Plan:            NewPlanRepository(q),
		Routine:         NewRoutineRepository(q),
		NutritionalPlan: NewNutritionalPlanRepository(q),
		Transaction:     NewTransactionRepository(q),
		Notification:    NewNotificationRepository(q),
	}
}

// TxManager runs a function against transaction-bound repositories. The
// function's error aborts the whole transaction; nil commits it.
type TxManager interface {
	InTx(ctx context.Context, opts *sql.TxOptions, fn func(*Repositories) error) error
}

var _ TxManager = (*Repositories)(nil)

func (r *Repositories) InTx(ctx context.Context, opts *sql.TxOptions, fn func(*Repositories) error) error {
	tx, err := r.db.BeginTxx(ctx, opts)
	if err != nil {
		return err
	}

	if err := fn(bind(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// SetLockTimeout bounds lock acquisition for the rest of the current
// transaction. SET LOCAL is a no-op outside one, so only call this on
// transaction-bound repositories.
func (r *Repositories) SetLockTimeout(ctx context.Context, d time.Duration) error {
	if r.q == nil {
		return nil
	}
	_, err := r.q.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", d.Milliseconds()))
	return err
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
