package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	pgx "github.com/jackc/pgx/v5"
)

// ExecuteInTransaction runs fn inside a transaction and commits or rolls back
// based on its return value. The deferred rollback is a no-op once the
// transaction has committed, so every exit path releases the connection.
func (db *PostgresDB) ExecuteInTransaction(
	ctx context.Context,
	fn func(pgx.Tx) error,
) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Printf("[DATABASE] Transaction rollback error: %v", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}

	return nil
}
