package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mpetrenko/shroud/internal/logger"
)

// txContextKey is the private context key under which an open *sql.Tx is
// carried between WithinTransaction and the repositories joining it.
type txContextKey struct{}

// querier is the subset of *sql.DB / *sql.Tx the repositories need. Both
// satisfy it, which lets repository methods run identically inside and
// outside a transaction.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// q returns the transaction stored in ctx when one is open, otherwise the
// shared connection pool. Every repository routes its statements through
// this method so that calls made under WithinTransaction join the
// transaction transparently.
func (db *DB) q(ctx context.Context) querier {
	if tx, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		return tx
	}
	return db.DB
}

// WithinTransaction implements [Transactor] over the wrapped connection.
//
// It begins a transaction, stores it in the context handed to fn, and
// commits when fn returns nil. Any error from fn rolls the whole
// transaction back and is returned unwrapped so sentinel matching with
// errors.Is keeps working. Nested calls join the already-open transaction
// instead of starting a second one.
func (db *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)

	if _, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*DB.WithinTransaction").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Err(rbErr).Str("func", "*DB.WithinTransaction").Msg("error rolling back transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*DB.WithinTransaction").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
