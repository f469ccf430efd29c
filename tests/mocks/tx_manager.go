package mocks

import (
	"context"
	"database/sql"

	"gymadmin/internal/repository"
)

// TxManager runs the transaction function directly against a caller-built
// Repositories value, so tests can observe the writes an orchestrator makes
// inside its transaction. BeginErr short-circuits the call, simulating a
// transaction that could not be opened.
type TxManager struct {
	Repos    *repository.Repositories
	Opts     []*sql.TxOptions
	BeginErr error
}

func (m *TxManager) InTx(ctx context.Context, opts *sql.TxOptions, fn func(*repository.Repositories) error) error {
	m.Opts = append(m.Opts, opts)
	if m.BeginErr != nil {
		return m.BeginErr
	}
	return fn(m.Repos)
}
