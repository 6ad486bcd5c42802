package apikey

import (
	"time"

	"github.com/google/uuid"
)

// ApiKey is the domain entity, mapped 1:1 to the api_keys table. The raw
// secret is never stored; only its SHA-256 hash plus a short display prefix.
type ApiKey struct {
	ID     uuid.UUID `db:"id" json:"id"`
	UserID uuid.UUID `db:"user_id" json:"user_id"`
	Name   string    `db:"name" json:"name"`

	KeyHash   string `db:"key_hash" json:"-"` // unique lookup column, never expose
	KeyPrefix string `db:"key_prefix" json:"key_prefix"`

	IsActive   bool       `db:"is_active" json:"is_active"`
	LastUsedAt *time.Time `db:"last_used_at" json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// IsExpired reports whether the key's optional expiry lies in the past.
// Keys without an expiry never expire.
func (k *ApiKey) IsExpired() bool {
	return k.ExpiresAt != nil && k.ExpiresAt.Before(time.Now())
}

// ToDTO returns the metadata view: prefix only, never the secret.
func (k *ApiKey) ToDTO() ApiKeyDTO {
	return ApiKeyDTO{
		ID:         k.ID,
		Name:       k.Name,
		KeyPrefix:  k.KeyPrefix,
		IsActive:   k.IsActive,
		LastUsedAt: k.LastUsedAt,
		ExpiresAt:  k.ExpiresAt,
		CreatedAt:  k.CreatedAt,
	}
}
