package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/internal/domain/dto"
	"github.com/guttosm/suppository-service/internal/i18n"
)

const defaultRateShards = 16

// window is one client's fixed-window counter.
type window struct {
	used    int
	resetAt time.Time
}

type rateShard struct {
	mu      sync.Mutex
	clients map[string]*window
}

// RateLimiter is a fixed-window limiter sharded by client key. Signed-in
// instructors are counted per email and everyone else per client IP.
type RateLimiter struct {
	shards []*rateShard
	limit  int
	period time.Duration
	now    func() time.Time
	stop   chan struct{}
	once   sync.Once
}

// NewRateLimiter allows limit requests per period for each client.
// A non-positive period means one minute.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	if period <= 0 {
		period = time.Minute
	}
	rl := &RateLimiter{
		shards: make([]*rateShard, defaultRateShards),
		limit:  limit,
		period: period,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	for i := range rl.shards {
		rl.shards[i] = &rateShard{clients: make(map[string]*window)}
	}
	go rl.sweepLoop()
	return rl
}

func (rl *RateLimiter) shard(key string) *rateShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// take consumes one request for key. It returns whether the request is
// allowed, how many remain and when the window resets.
func (rl *RateLimiter) take(key string) (bool, int, time.Time) {
	s := rl.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := rl.now()
	w, ok := s.clients[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(rl.period)}
		s.clients[key] = w
	}
	if w.used >= rl.limit {
		return false, 0, w.resetAt
	}
	w.used++
	return true, rl.limit - w.used, w.resetAt
}

// Middleware enforces the limit and reports it in X-RateLimit-* headers.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, resetAt := rl.take(clientKey(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			wait := math.Ceil(resetAt.Sub(rl.now()).Seconds())
			c.Header("Retry-After", strconv.Itoa(int(math.Max(wait, 1))))
			Abort(c, http.StatusTooManyRequests, dto.ErrCodeRateLimit, i18n.ErrKeyRateLimitExceeded)
			return
		}
		c.Next()
	}
}

func clientKey(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil && claims.Email != "" {
		return "instructor:" + claims.Email
	}
	return "ip:" + c.ClientIP()
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.period)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

// sweep drops clients whose window has ended.
func (rl *RateLimiter) sweep() {
	now := rl.now()
	for _, s := range rl.shards {
		s.mu.Lock()
		for key, w := range s.clients {
			if !now.Before(w.resetAt) {
				delete(s.clients, key)
			}
		}
		s.mu.Unlock()
	}
}

// Clients returns the number of tracked clients.
func (rl *RateLimiter) Clients() int {
	n := 0
	for _, s := range rl.shards {
		s.mu.Lock()
		n += len(s.clients)
		s.mu.Unlock()
	}
	return n
}

// Stop ends the sweep goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}
