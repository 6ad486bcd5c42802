package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mangable-backend/internal/domains/apikey"
	"mangable-backend/internal/domains/auth"
	"mangable-backend/internal/domains/user"
	pkgapikey "mangable-backend/pkg/apikey"
	"mangable-backend/pkg/jwt"
)

type stubUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (r *stubUserRepo) Create(context.Context, *user.User) error { return nil }

func (r *stubUserRepo) FindActiveByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok || !u.IsActive {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return r.FindActiveByID(context.Background(), id)
}

func (r *stubUserRepo) FindActiveByUsername(context.Context, string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsernameOrEmail(context.Context, string, string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

type stubKeyRepo struct {
	keys map[string]*apikey.ApiKey
}

func (r *stubKeyRepo) CreateCapped(context.Context, *apikey.ApiKey, int) error { return nil }

func (r *stubKeyRepo) FindActiveByHash(_ context.Context, hash string) (*apikey.ApiKey, error) {
	k, ok := r.keys[hash]
	if !ok || !k.IsActive {
		return nil, apikey.ErrKeyNotFound
	}
	return k, nil
}

func (r *stubKeyRepo) TouchLastUsed(context.Context, uuid.UUID) error { return nil }

func (r *stubKeyRepo) ListByUser(context.Context, uuid.UUID) ([]apikey.ApiKey, error) {
	return nil, nil
}

func (r *stubKeyRepo) Revoke(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type authHarness struct {
	router *gin.Engine
	tokens *jwt.Manager
	users  *stubUserRepo
	keys   *stubKeyRepo
}

func newAuthHarness() *authHarness {
	gin.SetMode(gin.TestMode)

	users := &stubUserRepo{users: map[uuid.UUID]*user.User{}}
	keys := &stubKeyRepo{keys: map[string]*apikey.ApiKey{}}
	tokens := jwt.NewManager("test-secret", time.Hour)
	resolver := auth.NewResolver(users, keys, tokens)

	router := gin.New()
	protected := router.Group("/", Authenticate(resolver))
	protected.GET("/whoami", func(c *gin.Context) {
		principal := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": principal.Username})
	})
	protected.GET("/admin-only", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return &authHarness{router: router, tokens: tokens, users: users, keys: keys}
}

func (h *authHarness) addUser(admin bool) *user.User {
	u := &user.User{ID: uuid.New(), Username: "tester", IsActive: true, IsAdmin: admin}
	h.users.users[u.ID] = u
	return u
}

func (h *authHarness) do(path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestAuthenticateNoCredentials(t *testing.T) {
	h := newAuthHarness()

	w := h.do("/whoami", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestAuthenticateBearerToken(t *testing.T) {
	h := newAuthHarness()
	u := h.addUser(false)

	token, err := h.tokens.Generate(u.ID)
	require.NoError(t, err)

	w := h.do("/whoami", http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tester")
}

func TestAuthenticateAPIKey(t *testing.T) {
	h := newAuthHarness()
	u := h.addUser(false)
	h.keys.keys[pkgapikey.Hash("mng_secret")] = &apikey.ApiKey{
		ID:       uuid.New(),
		UserID:   u.ID,
		IsActive: true,
	}

	w := h.do("/whoami", http.Header{"X-API-Key": {"mng_secret"}})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	h := newAuthHarness()
	u := h.addUser(false)

	token, err := h.tokens.Generate(u.ID)
	require.NoError(t, err)

	// Missing the Bearer scheme
	w := h.do("/whoami", http.Header{"Authorization": {token}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	h := newAuthHarness()
	regular := h.addUser(false)
	admin := h.addUser(true)

	regularToken, err := h.tokens.Generate(regular.ID)
	require.NoError(t, err)
	adminToken, err := h.tokens.Generate(admin.ID)
	require.NoError(t, err)

	w := h.do("/admin-only", http.Header{"Authorization": {"Bearer " + regularToken}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = h.do("/admin-only", http.Header{"Authorization": {"Bearer " + adminToken}})
	assert.Equal(t, http.StatusOK, w.Code)
}
