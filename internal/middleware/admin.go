package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casino-gateway/internal/services"
)

// AdminGateMiddleware requires the session to have passed the unlock gate.
// The ledger still checks the role on every admin mutation; this gate only
// keeps the operator surface closed to ordinary sessions.
func AdminGateMiddleware(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, exists := c.Get("session_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
			c.Abort()
			return
		}

		unlocked, err := admin.Unlocked(c.Request.Context(), sessionID.(string))
		if err != nil || !unlocked {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}
