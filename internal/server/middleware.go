package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"CryptoRadar/internal/auth"
)

const contextEmailKey = "account_email"

// AuthRequired verifies the bearer session token and stores the account
// email in the request context.
func AuthRequired(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(contextEmailKey, claims.Email)
		c.Next()
	}
}
