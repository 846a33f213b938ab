package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waylog/waylog/internal/security"
)

// BruteForceMiddleware rejects requests carrying an API key that is currently
// locked out. Failure recording happens in AuthMiddleware; this only gates.
func BruteForceMiddleware(guard *security.BruteForceGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := ExtractBearerToken(c)
		if apiKey == "" {
			c.Next()
			return
		}
		if guard.IsBlocked(apiKey) {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "too many failed authentication attempts")
			c.Abort()
			return
		}

		c.Next()
	}
}
