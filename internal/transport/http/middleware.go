package httptransport

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gallery-server/internal/domain/auth"
)

// claimsKey is where verified token claims live in the gin context.
const claimsKey = "authClaims"

// RequireRole verifies the bearer token and enforces the expected role.
// Missing or invalid tokens are 401; a valid token with the wrong role
// is 403. The middleware checks role only; per-resource ownership stays
// with the handler, which must read identity from ClaimsFrom and never
// from request parameters.
func RequireRole(tokens *auth.TokenService, role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			RespondMessage(c, http.StatusUnauthorized, "Missing token")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			RespondMessage(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		if claims.Role != role {
			RespondMessage(c, http.StatusForbidden, "Forbidden")
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the verified claims attached by RequireRole.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
