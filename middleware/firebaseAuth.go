package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gebedsrooster/utils"
)

// TokenVerifier resolves an identity-service ID token to a user id.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, idToken string) (string, error)
}

// FirebaseAuthMiddleware verifies the bearer ID token and stores the user id
// under "userID". With optional set, requests without a valid token continue
// anonymously.
func FirebaseAuthMiddleware(verifier TokenVerifier, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing or invalid Authorization header",
				"code":  "unauthenticated",
			})
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		uid, err := verifier.VerifyToken(c.Request.Context(), tokenString)
		if err != nil || uid == "" {
			if optional {
				c.Next()
				return
			}
			utils.GetLogger().Debug("rejected id token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
				"code":  "invalid_token",
			})
			return
		}

		c.Set("userID", uid)
		c.Set("idToken", tokenString)
		c.Next()
	}
}
