package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"casino-gateway/internal/services"
)

// AuthMiddleware validates the bearer token and checks the session is
// still open. The token is also accepted as a query parameter for the
// websocket upgrade, which cannot set headers from the browser.
func AuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
				c.Abort()
				return
			}
			tokenString = parts[1]
		} else {
			tokenString = c.Query("token")
			if tokenString == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
				c.Abort()
				return
			}
		}

		claims, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Set("principal", claims.Principal)
		c.Set("session_id", claims.SessionID)

		c.Next()
	}
}

// RateLimitMiddleware bounds the hot gameplay endpoints per principal.
func RateLimitMiddleware(sessions *services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := c.Get("principal")
		if !exists {
			c.Next()
			return
		}

		path := c.Request.URL.Path

		var limit int
		var window time.Duration

		switch {
		case strings.Contains(path, "/games/play"):
			limit = 30
			window = time.Minute
		case strings.Contains(path, "/games/blackjack"):
			limit = 60
			window = time.Minute
		case strings.Contains(path, "/games/mines/reveal"):
			limit = 120
			window = time.Minute
		case strings.Contains(path, "/games/mines"):
			limit = 60
			window = time.Minute
		default:
			c.Next()
			return
		}

		allowed, err := sessions.CheckRateLimit(c.Request.Context(), principal.(string), path, limit, window)
		if err != nil || !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": window.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
