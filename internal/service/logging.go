package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/guttosm/suppository-service/internal/repository"
)

// Log listing limits.
const (
	DefaultLogQueryLimit = 100
	MaxLogQueryLimit     = 1000
)

// maxLogTextLength caps the stored Message and Error in bytes.
const maxLogTextLength = 2048

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// LoggingService persists request and audit log entries.
type LoggingService interface {
	// CreateLog stores a single log entry.
	CreateLog(ctx context.Context, entry *model.LogEntry) error

	// CreateLogs stores multiple log entries in bulk.
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error

	// QueryLogs retrieves log entries matching the query options, newest first.
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)

	// CountLogs returns the count of log entries matching the query options.
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// LoggingServiceImpl implements the LoggingService interface.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
}

// NewLoggingService creates a new logging service implementation.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{repo: repo}
}

// CreateLog normalizes and stores a single entry.
func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	normalizeLogEntry(entry)
	return s.repo.Create(ctx, entry)
}

// CreateLogs normalizes and stores entries in one bulk write. Nil entries
// are skipped.
func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	batch := make([]*model.LogEntry, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		normalizeLogEntry(entry)
		batch = append(batch, entry)
	}
	if len(batch) == 0 {
		return nil
	}
	return s.repo.CreateMany(ctx, batch)
}

// QueryLogs applies DefaultLogQueryLimit when no limit is given and caps it
// at MaxLogQueryLimit.
func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	switch {
	case opts.Limit <= 0:
		opts.Limit = DefaultLogQueryLimit
	case opts.Limit > MaxLogQueryLimit:
		opts.Limit = MaxLogQueryLimit
	}
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	opts.Level = strings.ToLower(opts.Level)
	return s.repo.Query(ctx, opts)
}

// CountLogs returns the count of log entries matching the query options.
func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	opts.Level = strings.ToLower(opts.Level)
	return s.repo.Count(ctx, opts)
}

func normalizeLogEntry(entry *model.LogEntry) {
	entry.Level = strings.ToLower(strings.TrimSpace(entry.Level))
	if !logLevels[entry.Level] {
		entry.Level = "info"
	}
	entry.Message = truncateText(entry.Message, maxLogTextLength)
	entry.Error = truncateText(entry.Error, maxLogTextLength)
}

// truncateText cuts s to at most n bytes without splitting a rune.
func truncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
