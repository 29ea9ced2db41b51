// Package middleware holds the gin middleware chain of the suppository service.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds client-supplied IDs before they reach the logs.
const maxRequestIDLength = 128

// ContextKey names values stored on the gin context.
type ContextKey string

// Keys of values set by this package.
const (
	RequestIDKey ContextKey = "request_id"
	ClaimsKey    ContextKey = "instructor_claims"
	SessionIDKey ContextKey = "chat_session_id"
)

// RequestID reuses the client's X-Request-ID when it is reasonable and
// generates a UUID otherwise.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		c.Set(string(RequestIDKey), requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the request ID, or "" outside the middleware chain.
func GetRequestID(c *gin.Context) string {
	return c.GetString(string(RequestIDKey))
}

// SetSessionID tags the request with the chat session it touched, so request
// and audit logs can be filtered by session.
func SetSessionID(c *gin.Context, id string) {
	c.Set(string(SessionIDKey), id)
}

// GetSessionID returns the chat session ID set by a handler, if any.
func GetSessionID(c *gin.Context) string {
	return c.GetString(string(SessionIDKey))
}
