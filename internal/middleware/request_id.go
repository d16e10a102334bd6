package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-Id"

	// Inbound ids longer than this are replaced rather than echoed, so
	// a client cannot stuff arbitrary blobs into the logs.
	maxRequestIDLen = 64
)

// RequestID echoes a caller-supplied correlation id or mints a fresh
// one, and sets it on both the context and the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.NewString()
		}

		c.Set(requestIDHeader, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()
	}
}
