package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// UserIDHeader identifies the acting user on every bulk-upload request.
	UserIDHeader = "X-User-ID"
	// UserIDKey is the context key for the acting user id.
	UserIDKey = "user_id"
)

// CurrentUser rejects requests that carry no user identity before any
// multipart content is read.
func CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user identity required"})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID retrieves the acting user id from the gin context.
func GetUserID(c *gin.Context) string {
	if userID, exists := c.Get(UserIDKey); exists {
		if id, ok := userID.(string); ok {
			return id
		}
	}
	return ""
}
