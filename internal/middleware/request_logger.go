package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/internal/logger"
	"github.com/guttosm/suppository-service/internal/service"
	"github.com/rs/zerolog"
)

// RequestLogger writes one structured line per request and, when a logging
// service is given, stores the same entry in MongoDB.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		entry := newRequestEntry(c, levelForStatus(status), "HTTP request")
		entry.StatusCode = status
		entry.Duration = time.Since(start).Milliseconds()

		log := logger.Component("http")
		event := log.WithLevel(zerologLevel(entry.Level)).
			Str("request_id", entry.RequestID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", status).
			Int64("duration_ms", entry.Duration).
			Str("ip", entry.IP).
			Str("actor", entry.Actor)
		if entry.SessionID != "" {
			event = event.Str("session_id", entry.SessionID)
		}
		event.Msg(entry.Message)

		if loggingService != nil {
			dispatch(loggingService, entry)
		}
	}
}

func levelForStatus(status int) string {
	switch {
	case status >= 500:
		return "error"
	case status >= 400:
		return "warn"
	default:
		return "info"
	}
}

func zerologLevel(level string) zerolog.Level {
	switch level {
	case "error":
		return zerolog.ErrorLevel
	case "warn":
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
