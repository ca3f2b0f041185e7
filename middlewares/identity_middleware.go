package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserIdentity reads the gateway-provided user id. The chat gateway
// terminates the messaging platform and forwards the stable chat id in
// X-User-ID; requests without it are rejected.
func UserIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		tgID := c.GetHeader("X-User-ID")
		if tgID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "X-User-ID header required"})
			return
		}
		c.Set("tgID", tgID)
		c.Next()
	}
}

// TgID fetches the identity set by UserIdentity.
func TgID(c *gin.Context) string {
	return c.GetString("tgID")
}
