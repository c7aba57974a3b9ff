package middleware

import (
	"errors"
	"strings"

	"opaleka/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by AuthRequired.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthRequired verifies the bearer token, rejects revoked or expired tokens,
// and stores the caller's identity on the request context. Rejections carry a
// machine-readable reason so clients can distinguish expiry from revocation.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortAuth(c, "missing_token", "Missing or invalid Authorization header.")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ExtractClaims(tokenString)
		if errors.Is(err, utils.ErrTokenExpired) {
			abortAuth(c, "token_expired", "Token has expired.")
			return
		}
		if err != nil {
			abortAuth(c, "invalid_token", "Invalid or malformed token.")
			return
		}

		revoked, err := utils.IsTokenBlacklisted(tokenString)
		if err != nil {
			// Fail open on cache outages: expiry still bounds the damage.
			zap.L().Error("token blacklist check failed", zap.Error(err))
		} else if revoked {
			abortAuth(c, "token_revoked", "Token has been revoked.")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole restricts a route group to one role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			c.AbortWithStatusJSON(403, gin.H{
				"success": false,
				"message": "You do not have permission to perform this action.",
			})
			return
		}
		c.Next()
	}
}

func abortAuth(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(401, gin.H{
		"success": false,
		"message": message,
		"reason":  code,
	})
}
