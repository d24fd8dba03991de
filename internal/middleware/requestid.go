package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/retrodesk/reanimated/internal/shared/id"
)

// RequestIDHeader carries the request identifier on both sides.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key for the request identifier.
const requestIDKey = "request_id"

// RequestID assigns each request a req_* identifier, honoring one supplied
// by the client so calls can be correlated across the frontend boundary.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = id.NewRequestID().String()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Next()
	}
}

// GetRequestID returns the identifier assigned by RequestID, if any.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
