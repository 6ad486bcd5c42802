package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"mangable-backend/internal/domains/user"
	"mangable-backend/pkg/cache"
)

// userCacheTTL bounds staleness of the auth hot path. Activation changes take
// at most this long to propagate to in-flight credentials.
const userCacheTTL = 15 * time.Minute

const userColumns = `id, username, email, password_hash, is_active, is_admin, created_at, updated_at`

// postgresRepository is the concrete pgx implementation of user.Repository.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) user.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, username, email, password_hash,
			is_active, is_admin, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.IsActive,
		u.IsAdmin,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		// 23505 = unique_violation; map onto the domain conflict errors so
		// the handler can distinguish which field collided.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return user.ErrUsernameAlreadyTaken
			}
			return user.ErrEmailAlreadyTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// FindActiveByID is the credential-resolver hot path, so it runs cache-aside
// against Redis before hitting Postgres.
func (r *postgresRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	cacheKey := fmt.Sprintf("user:active:%s", id)

	var u user.User
	found, err := r.cache.Get(ctx, cacheKey, &u)
	if err == nil && found {
		return &u, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_active = TRUE`
	if err := r.scanOne(ctx, &u, query, id); err != nil {
		return nil, err
	}

	// Cache set failures must not fail the request.
	_ = r.cache.Set(ctx, cacheKey, &u, userCacheTTL)

	return &u, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.scanOne(ctx, &u, query, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindActiveByUsername backs login. Not cached: logins are infrequent
// relative to per-request credential resolution.
func (r *postgresRepository) FindActiveByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND is_active = TRUE`
	if err := r.scanOne(ctx, &u, query, username); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*user.User, error) {
	var u user.User
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $2`
	if err := r.scanOne(ctx, &u, query, username, email); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepository) scanOne(ctx context.Context, u *user.User, query string, args ...interface{}) error {
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.IsActive,
		&u.IsAdmin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	return nil
}
