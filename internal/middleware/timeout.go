package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/guttosm/suppository-service/internal/domain/dto"
	"github.com/guttosm/suppository-service/internal/i18n"
)

// Timeout bounds request handling. Handlers see the deadline through the
// request context; a handler that is still running when it passes gets a 504
// written on its behalf, and anything it writes later is discarded.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		tw := &timeoutWriter{ResponseWriter: c.Writer}
		c.Writer = tw

		done := make(chan struct{})
		panicked := make(chan interface{}, 1)
		go func() {
			defer close(done)
			defer func() {
				if p := recover(); p != nil {
					panicked <- p
				}
			}()
			c.Next()
		}()

		select {
		case <-done:
			select {
			case p := <-panicked:
				panic(p)
			default:
			}
		case <-ctx.Done():
		}

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyTimeout, i18n.GetLocale(c))
			resp := dto.NewError(dto.ErrCodeTimeout, message).WithRequestID(GetRequestID(c))
			tw.timeout(func(w gin.ResponseWriter) {
				w.WriteHeader(http.StatusGatewayTimeout)
				_ = render.JSON{Data: resp}.Render(w)
			})
			c.Abort()
		}
	}
}
