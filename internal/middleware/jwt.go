package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"moneyvault/internal/domain"
	"moneyvault/internal/utils" // JWT utility functions
	"moneyvault/internal/vault"

	"github.com/gin-gonic/gin" // Gin web framework
)

const principalKey = "principal"

// JWTAuthMiddleware validates bearer tokens, resolves the principal from
// the directory and records activity against the inactivity watchdog.
func JWTAuthMiddleware(secret string, dir *vault.Directory, session *vault.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseJWT(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		// A deleted principal invalidates its outstanding tokens.
		p, err := dir.ByID(claims.PrincipalID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		session.Touch()
		c.Set(principalKey, p)
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated principal stored by
// JWTAuthMiddleware.
func CurrentPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}
