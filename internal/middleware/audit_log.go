package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/guttosm/suppository-service/internal/service"
)

const auditWriteTimeout = 5 * time.Second

// AuditLog records a completed action such as a calculation or a sign-in.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := newRequestEntry(c, "info", message)
	entry.ActionType = actionType
	entry.WithFields(fields)
	dispatch(loggingService, entry)
}

// AuditLogError records a failed action.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := newRequestEntry(c, "error", message)
	entry.ActionType = actionType
	if err != nil {
		entry.Error = err.Error()
	}
	entry.WithFields(fields)
	dispatch(loggingService, entry)
}

// newRequestEntry fills the request-scoped fields shared by request and audit logs.
func newRequestEntry(c *gin.Context, level, message string) *model.LogEntry {
	return &model.LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Message:   message,
		RequestID: GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Actor:     Actor(c),
		SessionID: GetSessionID(c),
	}
}

// dispatch hands the entry to the async logger, or writes it on its own
// goroutine when no async logger is running.
func dispatch(loggingService service.LoggingService, entry *model.LogEntry) {
	if al := GetAsyncLogger(); al != nil {
		al.Log(entry)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}
