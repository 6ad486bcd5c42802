package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mangable-backend/internal/domains/apikey"
	pkgapikey "mangable-backend/pkg/apikey"
)

// fakeRepo enforces the per-user active cap the way the real repository
// does, so the service behaviour around the limit can be exercised.
type fakeRepo struct {
	keys map[uuid.UUID]*apikey.ApiKey
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{keys: map[uuid.UUID]*apikey.ApiKey{}}
}

func (r *fakeRepo) CreateCapped(_ context.Context, k *apikey.ApiKey, maxActive int) error {
	active := 0
	for _, existing := range r.keys {
		if existing.UserID == k.UserID && existing.IsActive {
			active++
		}
	}
	if active >= maxActive {
		return apikey.ErrTooManyActiveKeys
	}
	clone := *k
	r.keys[k.ID] = &clone
	return nil
}

func (r *fakeRepo) FindActiveByHash(_ context.Context, hash string) (*apikey.ApiKey, error) {
	for _, k := range r.keys {
		if k.KeyHash == hash && k.IsActive {
			return k, nil
		}
	}
	return nil, apikey.ErrKeyNotFound
}

func (r *fakeRepo) TouchLastUsed(_ context.Context, id uuid.UUID) error {
	k, ok := r.keys[id]
	if !ok {
		return apikey.ErrKeyNotFound
	}
	now := time.Now()
	k.LastUsedAt = &now
	return nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]apikey.ApiKey, error) {
	out := []apikey.ApiKey{}
	for _, k := range r.keys {
		if k.UserID == userID {
			out = append(out, *k)
		}
	}
	return out, nil
}

func (r *fakeRepo) Revoke(_ context.Context, id, userID uuid.UUID) error {
	k, ok := r.keys[id]
	if !ok || k.UserID != userID {
		return apikey.ErrKeyNotFound
	}
	k.IsActive = false
	return nil
}

func newService(repo apikey.Repository, maxActive int) apikey.Service {
	return NewKeyService(repo, pkgapikey.NewGenerator("mng_"), maxActive)
}

func TestCreateReturnsSecretOnce(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, 10)
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, apikey.CreateKeyRequest{Name: "ci"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.FullKey, "mng_"))
	assert.True(t, strings.HasPrefix(created.FullKey, created.KeyPrefix))
	assert.True(t, created.IsActive)

	// Only the hash is persisted, and it matches the returned secret.
	stored := repo.keys[created.ID]
	require.NotNil(t, stored)
	assert.Equal(t, pkgapikey.Hash(created.FullKey), stored.KeyHash)
	assert.NotContains(t, stored.KeyHash, created.FullKey)

	// Listing never exposes the secret again.
	keys, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, created.KeyPrefix, keys[0].KeyPrefix)
}

func TestCreateRequiresName(t *testing.T) {
	svc := newService(newFakeRepo(), 10)

	_, err := svc.Create(context.Background(), uuid.New(), apikey.CreateKeyRequest{})
	assert.Error(t, err)
}

func TestCreateEnforcesActiveCap(t *testing.T) {
	svc := newService(newFakeRepo(), 10)
	userID := uuid.New()

	for i := 0; i < 10; i++ {
		_, err := svc.Create(context.Background(), userID, apikey.CreateKeyRequest{Name: "key"})
		require.NoError(t, err)
	}

	_, err := svc.Create(context.Background(), userID, apikey.CreateKeyRequest{Name: "eleventh"})
	assert.ErrorIs(t, err, apikey.ErrTooManyActiveKeys)

	// Another user is unaffected by the first user's cap.
	_, err = svc.Create(context.Background(), uuid.New(), apikey.CreateKeyRequest{Name: "other"})
	assert.NoError(t, err)
}

func TestRevokeFreesCapSlot(t *testing.T) {
	svc := newService(newFakeRepo(), 10)
	userID := uuid.New()

	var lastID uuid.UUID
	for i := 0; i < 10; i++ {
		created, err := svc.Create(context.Background(), userID, apikey.CreateKeyRequest{Name: "key"})
		require.NoError(t, err)
		lastID = created.ID
	}

	require.NoError(t, svc.Revoke(context.Background(), lastID, userID))

	_, err := svc.Create(context.Background(), userID, apikey.CreateKeyRequest{Name: "replacement"})
	assert.NoError(t, err)
}

func TestRevokeOtherUsersKey(t *testing.T) {
	svc := newService(newFakeRepo(), 10)
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, apikey.CreateKeyRequest{Name: "key"})
	require.NoError(t, err)

	err = svc.Revoke(context.Background(), created.ID, uuid.New())
	assert.ErrorIs(t, err, apikey.ErrKeyNotFound)
}

func TestCreateWithExpiry(t *testing.T) {
	svc := newService(newFakeRepo(), 10)
	expiry := time.Now().Add(24 * time.Hour).UTC()

	created, err := svc.Create(context.Background(), uuid.New(), apikey.CreateKeyRequest{
		Name:      "temporary",
		ExpiresAt: &expiry,
	})
	require.NoError(t, err)
	require.NotNil(t, created.ExpiresAt)
	assert.Equal(t, expiry, *created.ExpiresAt)
}
