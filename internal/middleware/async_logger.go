package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/guttosm/suppository-service/internal/logger"
	"github.com/guttosm/suppository-service/internal/service"
)

// AsyncLoggerConfig sizes the log write queue and its worker pool.
type AsyncLoggerConfig struct {
	BufferSize   int
	NumWorkers   int
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns the server defaults.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:   1000,
		NumWorkers:   4,
		WriteTimeout: 5 * time.Second,
	}
}

// AsyncLoggerStats counts entries by fate.
type AsyncLoggerStats struct {
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Written  int64 `json:"written"`
	Failed   int64 `json:"failed"`
}

// AsyncLogger writes log entries to the logging service from a fixed pool
// of workers. Entries arriving while the queue is full are dropped.
type AsyncLogger struct {
	sink         service.LoggingService
	queue        chan *model.LogEntry
	writeTimeout time.Duration
	wg           sync.WaitGroup
	mu           sync.RWMutex
	closed       bool

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	failed   atomic.Int64
}

// NewAsyncLogger starts the workers. It returns nil for a nil sink.
func NewAsyncLogger(sink service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if sink == nil {
		return nil
	}
	if cfg.NumWorkers < 1 {
		cfg.NumWorkers = 1
	}

	al := &AsyncLogger{
		sink:         sink,
		queue:        make(chan *model.LogEntry, cfg.BufferSize),
		writeTimeout: cfg.WriteTimeout,
	}
	al.wg.Add(cfg.NumWorkers)
	for i := 0; i < cfg.NumWorkers; i++ {
		go al.work()
	}
	return al
}

// work drains the queue until it is closed.
func (al *AsyncLogger) work() {
	defer al.wg.Done()
	for entry := range al.queue {
		al.write(entry)
	}
}

func (al *AsyncLogger) write(entry *model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.writeTimeout)
	defer cancel()

	if err := al.sink.CreateLog(ctx, entry); err != nil {
		al.failed.Add(1)
		log := logger.Component("async_logger")
		log.Warn().Err(err).Str("request_id", entry.RequestID).Msg("log entry not stored")
		return
	}
	al.written.Add(1)
}

// Log queues an entry and reports whether it was accepted. Entries logged
// after Stop are dropped.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	al.mu.RLock()
	defer al.mu.RUnlock()
	if al.closed {
		al.dropped.Add(1)
		return false
	}
	select {
	case al.queue <- entry:
		al.enqueued.Add(1)
		return true
	default:
		al.dropped.Add(1)
		return false
	}
}

// Stop closes the queue and waits for queued entries to be written.
func (al *AsyncLogger) Stop() {
	al.mu.Lock()
	if !al.closed {
		al.closed = true
		close(al.queue)
	}
	al.mu.Unlock()
	al.wg.Wait()
}

// Stats returns the current counters.
func (al *AsyncLogger) Stats() AsyncLoggerStats {
	return AsyncLoggerStats{
		Enqueued: al.enqueued.Load(),
		Dropped:  al.dropped.Load(),
		Written:  al.written.Load(),
		Failed:   al.failed.Load(),
	}
}

var (
	asyncLogger   *AsyncLogger
	asyncLoggerMu sync.RWMutex
)

// InitAsyncLogger replaces the process-wide async logger, stopping the old one.
func InitAsyncLogger(sink service.LoggingService, cfg AsyncLoggerConfig) {
	asyncLoggerMu.Lock()
	defer asyncLoggerMu.Unlock()

	if asyncLogger != nil {
		asyncLogger.Stop()
	}
	asyncLogger = NewAsyncLogger(sink, cfg)
}

// GetAsyncLogger returns the process-wide async logger, or nil.
func GetAsyncLogger() *AsyncLogger {
	asyncLoggerMu.RLock()
	defer asyncLoggerMu.RUnlock()
	return asyncLogger
}

// StopAsyncLogger flushes and removes the process-wide async logger.
func StopAsyncLogger() {
	asyncLoggerMu.Lock()
	defer asyncLoggerMu.Unlock()

	if asyncLogger != nil {
		asyncLogger.Stop()
		asyncLogger = nil
	}
}
