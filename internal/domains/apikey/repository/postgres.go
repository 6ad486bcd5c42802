package repository

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mangable-backend/internal/domains/apikey"
	"mangable-backend/internal/infrastructure/database"
)

const keyColumns = `id, user_id, name, key_hash, key_prefix, is_active, last_used_at, expires_at, created_at`

// postgresRepository is the concrete pgx implementation of apikey.Repository.
type postgresRepository struct {
	db *database.PostgresDB
}

func NewPostgresRepository(db *database.PostgresDB) apikey.Repository {
	return &postgresRepository{db: db}
}

// advisoryLockKey folds a user UUID into the 64-bit keyspace of
// pg_advisory_xact_lock.
func advisoryLockKey(userID uuid.UUID) int64 {
	return int64(binary.BigEndian.Uint64(userID[:8]))
}

// CreateCapped enforces the per-user active-key cap inside a transaction
// holding an advisory lock on the owner. Two concurrent creates for the same
// user serialize on the lock, so the count-then-insert cannot race past the
// cap.
func (r *postgresRepository) CreateCapped(ctx context.Context, k *apikey.ApiKey, maxActive int) error {
	return r.db.ExecuteInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryLockKey(k.UserID)); err != nil {
			return fmt.Errorf("acquire key-cap lock: %w", err)
		}

		var active int
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM api_keys WHERE user_id = $1 AND is_active = TRUE`,
			k.UserID,
		).Scan(&active)
		if err != nil {
			return fmt.Errorf("count active keys: %w", err)
		}
		if active >= maxActive {
			return apikey.ErrTooManyActiveKeys
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO api_keys (
				id, user_id, name, key_hash, key_prefix,
				is_active, last_used_at, expires_at, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			k.ID,
			k.UserID,
			k.Name,
			k.KeyHash,
			k.KeyPrefix,
			k.IsActive,
			k.LastUsedAt,
			k.ExpiresAt,
			k.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert api key: %w", err)
		}
		return nil
	})
}

func (r *postgresRepository) FindActiveByHash(ctx context.Context, keyHash string) (*apikey.ApiKey, error) {
	query := `SELECT ` + keyColumns + ` FROM api_keys WHERE key_hash = $1 AND is_active = TRUE`

	var k apikey.ApiKey
	err := r.db.Pool.QueryRow(ctx, query, keyHash).Scan(
		&k.ID,
		&k.UserID,
		&k.Name,
		&k.KeyHash,
		&k.KeyPrefix,
		&k.IsActive,
		&k.LastUsedAt,
		&k.ExpiresAt,
		&k.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apikey.ErrKeyNotFound
		}
		return nil, fmt.Errorf("find api key by hash: %w", err)
	}
	return &k, nil
}

func (r *postgresRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE api_keys SET last_used_at = $1 WHERE id = $2`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("touch api key: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]apikey.ApiKey, error) {
	query := `SELECT ` + keyColumns + ` FROM api_keys WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()

	keys := []apikey.ApiKey{}
	for rows.Next() {
		var k apikey.ApiKey
		if err := rows.Scan(
			&k.ID,
			&k.UserID,
			&k.Name,
			&k.KeyHash,
			&k.KeyPrefix,
			&k.IsActive,
			&k.LastUsedAt,
			&k.ExpiresAt,
			&k.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return keys, nil
}

// Revoke flips is_active off. Scoped to the owner so users cannot revoke
// each other's keys; a miss (wrong owner or unknown id) is a not-found.
func (r *postgresRepository) Revoke(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE api_keys SET is_active = FALSE WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apikey.ErrKeyNotFound
	}
	return nil
}
