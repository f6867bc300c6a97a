package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/surgearcade/portal/internal/logger"
)

// Tx defines the common interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SafeRollback rolls back a transaction and logs any error. Rolling back an
// already-committed transaction is expected on the happy path and not logged.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		if !errors.Is(err, pgx.ErrTxClosed) {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
