package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the correlation id, inbound and outbound.
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the gin context key the correlation id is stored under.
	RequestIDKey = "request_id"
)

// RequestID tags every request with a correlation id so an upload can be
// traced across log lines. A caller-supplied X-Request-ID is kept; otherwise
// a fresh UUID is minted. The id is echoed back in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID returns the request's correlation id, empty when the
// middleware did not run.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
