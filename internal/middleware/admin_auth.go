package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminToken guards privileged endpoints with a shared header token.
// Policy edits and stock syncs come from the back office, not shoppers.
func AdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Admin-Token") != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin token"})
			return
		}
		c.Next()
	}
}
