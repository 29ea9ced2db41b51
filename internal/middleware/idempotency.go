package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/internal/service"
	"github.com/guttosm/suppository-service/internal/service/cache"
)

// IdempotencyKeyHeader lets a client retry a POST without repeating its effect.
const IdempotencyKeyHeader = "Idempotency-Key"

// IdempotencyReplayedHeader marks a response served from the replay cache.
const IdempotencyReplayedHeader = "X-Idempotency-Replayed"

// maxIdempotentBody caps the body read for the cache key.
const maxIdempotentBody = 1 << 20

type replay struct {
	status      int
	contentType string
	body        []byte
}

// IdempotencyStore holds replayable responses keyed by idempotency key and request.
type IdempotencyStore struct {
	cache cache.Cache[replay]
}

// NewIdempotencyStore keeps up to capacity responses for ttl.
func NewIdempotencyStore(capacity int, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{cache: service.NewTTLCache[replay]("idempotency", capacity, ttl)}
}

// Stop releases the cache's cleanup goroutine.
func (s *IdempotencyStore) Stop() {
	s.cache.Stop()
}

// Idempotency replays the stored 2xx response when a POST arrives again with
// the same Idempotency-Key, method, path and body. Requests without the
// header pass through.
func Idempotency(store *IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if store == nil || key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey, err := replayKey(key, c.Request)
		if err != nil {
			c.Next()
			return
		}

		if r, ok := store.cache.Get(cacheKey); ok {
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(r.status, r.contentType, r.body)
			c.Abort()
			return
		}

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		if status := rec.Status(); status >= 200 && status < 300 {
			store.cache.Set(cacheKey, replay{
				status:      status,
				contentType: rec.Header().Get("Content-Type"),
				body:        rec.body.Bytes(),
			})
		}
	}
}

// replayKey hashes the idempotency key with the request line and at most
// maxIdempotentBody bytes of the body, then restores the full body for the
// handler.
func replayKey(key string, req *http.Request) (string, error) {
	h := sha256.New()
	h.Write([]byte(key))
	h.Write([]byte{0})
	h.Write([]byte(req.Method + " " + req.URL.Path))
	h.Write([]byte{0})

	if req.Body != nil {
		body, err := io.ReadAll(io.LimitReader(req.Body, maxIdempotentBody))
		if err != nil {
			return "", err
		}
		req.Body = struct {
			io.Reader
			io.Closer
		}{io.MultiReader(bytes.NewReader(body), req.Body), req.Body}
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// recordingWriter copies the response body as it is written.
type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
