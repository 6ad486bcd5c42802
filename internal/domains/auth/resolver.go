package auth

import (
	"context"
	"errors"

	"mangable-backend/internal/domains/apikey"
	"mangable-backend/internal/domains/user"
	pkgapikey "mangable-backend/pkg/apikey"
	"mangable-backend/pkg/jwt"
	"mangable-backend/pkg/logger"
)

// ErrUnauthenticated is the single failure mode of credential resolution.
// Malformed tokens, unknown keys, expired keys and inactive users all
// collapse into it: probing valid-vs-malformed credentials yields no signal.
var ErrUnauthenticated = errors.New("not authenticated")

// Resolver turns request credentials into an authenticated principal.
// Two independent credential paths are supported:
//
//  1. Bearer token (Authorization header) - verified locally, then the
//     subject is loaded as an active user.
//  2. API key (X-API-Key header) - hashed and looked up as an active,
//     unexpired key; resolution touches last_used_at and loads the owner.
//
// When both are present and valid, the token-resolved principal wins.
type Resolver struct {
	users  user.Repository
	keys   apikey.Repository
	tokens *jwt.Manager
}

func NewResolver(users user.Repository, keys apikey.Repository, tokens *jwt.Manager) *Resolver {
	return &Resolver{
		users:  users,
		keys:   keys,
		tokens: tokens,
	}
}

// Resolve applies the precedence rules to the supplied credentials. Either
// argument may be empty. Both paths are evaluated independently - an API key
// riding alongside a valid token still gets its usage recorded - and the
// token-resolved principal wins. Returns the principal or ErrUnauthenticated.
func (r *Resolver) Resolve(ctx context.Context, bearerToken, apiKeySecret string) (*user.User, error) {
	tokenPrincipal := r.resolveToken(ctx, bearerToken)
	keyPrincipal := r.resolveAPIKey(ctx, apiKeySecret)

	if tokenPrincipal != nil {
		return tokenPrincipal, nil
	}
	if keyPrincipal != nil {
		return keyPrincipal, nil
	}
	return nil, ErrUnauthenticated
}

func (r *Resolver) resolveToken(ctx context.Context, token string) *user.User {
	if token == "" {
		return nil
	}

	claims, err := r.tokens.Verify(token)
	if err != nil {
		// Invalid or expired token is "no identity", not a distinct error.
		return nil
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil
	}

	u, err := r.users.FindActiveByID(ctx, userID)
	if err != nil {
		return nil
	}
	return u
}

func (r *Resolver) resolveAPIKey(ctx context.Context, secret string) *user.User {
	if secret == "" {
		return nil
	}

	key, err := r.keys.FindActiveByHash(ctx, pkgapikey.Hash(secret))
	if err != nil {
		return nil
	}
	if key.IsExpired() {
		return nil
	}

	// Usage tracking is persisted immediately, independent of whether the
	// request itself ultimately succeeds.
	if err := r.keys.TouchLastUsed(ctx, key.ID); err != nil {
		logger.Error("touch api key last_used_at", err)
	}

	u, err := r.users.FindActiveByID(ctx, key.UserID)
	if err != nil {
		return nil
	}
	return u
}
