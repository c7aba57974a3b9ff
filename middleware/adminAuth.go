package middleware

import (
	"net/http"

	"opaleka/config"

	"github.com/gin-gonic/gin"
)

// AdminAuth guards admin routes with the static API key from configuration.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Admin-Key")
		if key == "" || key != config.AppConfig.AdminAPIKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized admin access.",
			})
			return
		}
		c.Set("isAdmin", true)
		c.Next()
	}
}
