package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/linuxgeek/simulado/internal/auth"
	"github.com/linuxgeek/simulado/internal/response"
)

// ContextKeyClaims is the Gin context key for the verified token claims.
const ContextKeyClaims = "claims"

// RequireUser validates a bearer token from the Authorization header and
// stores its claims in the context. Progress endpoints are per-user, so
// every route behind this middleware can rely on a non-empty user ID.
func RequireUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		claims, err := auth.ParseToken(secret, tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims extracts verified claims from the Gin context, or nil if the
// request was not authenticated.
func GetClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(ContextKeyClaims)
	if !ok {
		return nil
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
