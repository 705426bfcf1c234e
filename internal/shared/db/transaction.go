// Package db provides database utilities including transaction management.
// The coordinator offers two forms: an interactive form that hands a
// transaction-scoped context to a callback, and a batch form that runs an
// ordered list of independent operations atomically.
package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fixdesk/internal/shared/errors"
)

// txKey is the context key for storing the active transaction.
type txKey struct{}

// Options configure one transaction.
type Options struct {
	// Isolation is passed through to the storage engine. The zero value keeps
	// the engine default.
	Isolation sql.IsolationLevel
	// ReadOnly marks the transaction read-only where the engine supports it.
	ReadOnly bool
	// Timeout aborts the transaction and rolls it back when the callback has
	// not returned in time. Zero means no timeout.
	Timeout time.Duration
}

// Operation is one step of a batch transaction. Its result is returned to the
// caller in submission order.
type Operation func(ctx context.Context) (any, error)

// TransactionManager coordinates database transactions. Repositories pick up
// the transaction handle from the context, so the same repository code runs
// inside and outside transactions.
type TransactionManager struct {
	db *gorm.DB
}

// NewTransactionManager creates a new TransactionManager.
func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction executes fn within a database transaction. The transaction
// commits when fn returns nil and rolls back when it returns an error, panics,
// or exceeds the configured timeout. The context passed to fn carries the
// transaction; nothing fn writes is visible outside until commit.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, opts Options, fn func(ctx context.Context) error) error {
	runCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	txOpts := &sql.TxOptions{Isolation: opts.Isolation, ReadOnly: opts.ReadOnly}

	err := tm.db.WithContext(runCtx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(runCtx, txKey{}, tx)
		if err := fn(txCtx); err != nil {
			return err
		}
		// A callback that outlived the deadline must not commit.
		return runCtx.Err()
	}, txOpts)
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.NewTransactionAborted("transaction timed out", err)
	}
	if de := apperrors.AsDataError(err); de != nil {
		return err
	}
	return apperrors.NewTransactionAborted("transaction rolled back", err)
}

// RunBatch executes the given operations in order inside one transaction and
// returns their results in the same order. If any operation fails, every
// prior effect is rolled back and the failing operation's error is surfaced.
func (tm *TransactionManager) RunBatch(ctx context.Context, opts Options, ops ...Operation) ([]any, error) {
	results := make([]any, 0, len(ops))
	err := tm.RunInTransaction(ctx, opts, func(txCtx context.Context) error {
		for _, op := range ops {
			result, err := op(txCtx)
			if err != nil {
				return err
			}
			results = append(results, result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetTx returns the transaction from context if available, otherwise the
// default DB handle bound to the context.
func (tm *TransactionManager) GetTx(ctx context.Context) *gorm.DB {
	return GetTxFromContext(ctx, tm.db)
}

// GetTxFromContext returns the transaction from context if available.
// This is a standalone function for use in repositories.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
