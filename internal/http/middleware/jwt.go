package middleware

import (
	"net/http"
	"strings"

	"reminder_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT guards a route with the session token. When no secret is configured
// the app runs auth-less (trusted local device) and the middleware passes
// everything through.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !service.Enabled() {
			c.Next()
			return
		}

		auth := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			// websocket clients can't set headers from the browser API
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		if err := service.ParseSessionToken(token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Next()
	}
}
