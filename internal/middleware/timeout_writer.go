package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
)

// timeoutWriter drops handler output once the timeout response is sent.
type timeoutWriter struct {
	gin.ResponseWriter
	mu       sync.Mutex
	timedOut bool
}

// timeout marks the writer as timed out and lets respond write to the
// underlying writer. It does nothing when the handler already started its
// response.
func (w *timeoutWriter) timeout(respond func(gin.ResponseWriter)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ResponseWriter.Written() {
		return
	}
	w.timedOut = true
	respond(w.ResponseWriter)
}

func (w *timeoutWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func (w *timeoutWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.timedOut {
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *timeoutWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}
