package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mangable-backend/internal/domains/apikey"
	pkgapikey "mangable-backend/pkg/apikey"
)

// keyService implements apikey.Service.
type keyService struct {
	repo      apikey.Repository
	generator *pkgapikey.Generator
	maxActive int
}

func NewKeyService(repo apikey.Repository, generator *pkgapikey.Generator, maxActive int) apikey.Service {
	return &keyService{
		repo:      repo,
		generator: generator,
		maxActive: maxActive,
	}
}

// Create issues a new key. The full secret appears in the response exactly
// once; only its hash and display prefix are persisted.
func (s *keyService) Create(ctx context.Context, userID uuid.UUID, req apikey.CreateKeyRequest) (*apikey.CreatedKeyDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	secret, err := s.generator.NewSecret()
	if err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}

	k := &apikey.ApiKey{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		KeyHash:   pkgapikey.Hash(secret),
		KeyPrefix: pkgapikey.DisplayPrefix(secret),
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateCapped(ctx, k, s.maxActive); err != nil {
		return nil, err
	}

	return &apikey.CreatedKeyDTO{
		ApiKeyDTO: k.ToDTO(),
		FullKey:   secret,
	}, nil
}

// List returns the caller's keys, prefix-only metadata.
func (s *keyService) List(ctx context.Context, userID uuid.UUID) ([]apikey.ApiKeyDTO, error) {
	keys, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]apikey.ApiKeyDTO, 0, len(keys))
	for i := range keys {
		dtos = append(dtos, keys[i].ToDTO())
	}
	return dtos, nil
}

// Revoke soft-disables one of the caller's keys.
func (s *keyService) Revoke(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.Revoke(ctx, id, userID)
}
