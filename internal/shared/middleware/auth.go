package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"mangable-backend/internal/domains/auth"
	"mangable-backend/internal/domains/user"
	"mangable-backend/internal/shared/response"
)

const (
	// principalKey is where the resolved user lives in the gin context.
	principalKey = "principal"

	apiKeyHeader = "X-API-Key"
)

// Authenticate resolves the request's credentials (bearer token and/or API
// key) into a principal and aborts with 401 when neither resolves.
func Authenticate(resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := extractBearer(c.GetHeader("Authorization"))
		apiKey := c.GetHeader(apiKeyHeader)

		principal, err := resolver.Resolve(c.Request.Context(), bearer, apiKey)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			response.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireAdmin rejects non-admin principals with 403. Must run after
// Authenticate in the chain.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentUser(c)
		if principal == nil || !principal.IsAdmin {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated principal, or nil on an
// unauthenticated request.
func CurrentUser(c *gin.Context) *user.User {
	if v, exists := c.Get(principalKey); exists {
		if u, ok := v.(*user.User); ok {
			return u
		}
	}
	return nil
}

// extractBearer pulls the token out of an "Authorization: Bearer x" header.
// Anything else yields empty, which the resolver treats as no credential.
func extractBearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
