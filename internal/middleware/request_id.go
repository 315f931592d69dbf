package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the HTTP header carrying the request ID.
	RequestIDHeader = "X-Request-ID"
)

// ContextKey type for context keys to avoid collisions.
type ContextKey string

const (
	// RequestIDKey is the context key for the request ID.
	RequestIDKey ContextKey = "request_id"
)

// RequestID assigns each request a unique ID. A client-supplied
// X-Request-ID header is honored, otherwise a UUID v4 is generated.
// The ID is echoed back in the response headers and attached to error
// envelopes so checkout and upload failures can be traced in the logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(string(RequestIDKey), requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID retrieves the request ID from the gin context.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(string(RequestIDKey)); exists {
		if requestID, ok := id.(string); ok {
			return requestID
		}
	}
	return ""
}
