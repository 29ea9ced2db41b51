package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewLoggingService(t *testing.T) {
	assert.IsType(t, &LoggingServiceImpl{}, NewLoggingService(new(MockLogsRepository)))
}

func TestLoggingService_CreateLog(t *testing.T) {
	tests := []struct {
		name      string
		entry     *model.LogEntry
		check     func(*testing.T, *model.LogEntry)
		repoErr   error
		wantError bool
	}{
		{
			name:  "audit entry is stored as given",
			entry: &model.LogEntry{Level: "info", Message: "calculation completed", ActionType: model.ActionCalculate},
			check: func(t *testing.T, e *model.LogEntry) {
				assert.Equal(t, "info", e.Level)
				assert.Equal(t, model.ActionCalculate, e.ActionType)
			},
		},
		{
			name:  "level is lower-cased",
			entry: &model.LogEntry{Level: " WARN ", Message: "history write failed"},
			check: func(t *testing.T, e *model.LogEntry) { assert.Equal(t, "warn", e.Level) },
		},
		{
			name:  "unknown level becomes info",
			entry: &model.LogEntry{Level: "fatal", Message: "x"},
			check: func(t *testing.T, e *model.LogEntry) { assert.Equal(t, "info", e.Level) },
		},
		{
			name:  "long message and error are truncated",
			entry: &model.LogEntry{Level: "error", Message: strings.Repeat("ρ", maxLogTextLength), Error: strings.Repeat("e", maxLogTextLength+10)},
			check: func(t *testing.T, e *model.LogEntry) {
				assert.LessOrEqual(t, len(e.Message), maxLogTextLength)
				assert.True(t, strings.HasSuffix(e.Message, "ρ"))
				assert.Len(t, e.Error, maxLogTextLength)
			},
		},
		{
			name:      "repository error",
			entry:     &model.LogEntry{Level: "error", Message: "failed"},
			repoErr:   errors.New("write failed"),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockLogsRepository)
			repo.On("Create", mock.Anything, tt.entry).Return(tt.repoErr)

			err := NewLoggingService(repo).CreateLog(context.Background(), tt.entry)

			if tt.wantError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				tt.check(t, tt.entry)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestLoggingService_CreateLogs(t *testing.T) {
	t.Run("empty or nil-only batch skips the repository", func(t *testing.T) {
		repo := new(MockLogsRepository)
		svc := NewLoggingService(repo)
		assert.NoError(t, svc.CreateLogs(context.Background(), nil))
		assert.NoError(t, svc.CreateLogs(context.Background(), []*model.LogEntry{nil}))
		repo.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
	})

	t.Run("bulk insert drops nil entries", func(t *testing.T) {
		repo := new(MockLogsRepository)
		repo.On("CreateMany", mock.Anything, mock.MatchedBy(func(entries []*model.LogEntry) bool {
			return len(entries) == 2 && entries[0].Actor == "instructor@example.edu" &&
				entries[1].SessionID == "s-1" && entries[1].Level == "info"
		})).Return(nil)

		err := NewLoggingService(repo).CreateLogs(context.Background(), []*model.LogEntry{
			{Level: "info", Message: "one", Actor: "instructor@example.edu"},
			nil,
			{Message: "two", SessionID: "s-1"},
		})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockLogsRepository)
		repo.On("CreateMany", mock.Anything, mock.Anything).Return(errors.New("bulk write failed"))
		assert.Error(t, NewLoggingService(repo).CreateLogs(context.Background(), []*model.LogEntry{{Message: "one"}}))
	})
}

func TestLoggingService_QueryLogs(t *testing.T) {
	start := time.Now().Add(-time.Hour)

	tests := []struct {
		name string
		opts model.LogQueryOptions
		want model.LogQueryOptions
	}{
		{
			name: "passes filters through",
			opts: model.LogQueryOptions{RequestID: "req-1", ActionType: model.ActionChatCompute, StartTime: &start, Limit: 10, Skip: 5},
			want: model.LogQueryOptions{RequestID: "req-1", ActionType: model.ActionChatCompute, StartTime: &start, Limit: 10, Skip: 5},
		},
		{
			name: "default limit",
			opts: model.LogQueryOptions{Level: "ERROR"},
			want: model.LogQueryOptions{Level: "error", Limit: DefaultLogQueryLimit},
		},
		{
			name: "limit is capped and negative skip cleared",
			opts: model.LogQueryOptions{Limit: 5000, Skip: -3},
			want: model.LogQueryOptions{Limit: MaxLogQueryLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockLogsRepository)
			repo.On("Query", mock.Anything, tt.want).Return([]model.LogEntry{{Message: "chat compute", SessionID: "s-1"}}, nil)

			entries, err := NewLoggingService(repo).QueryLogs(context.Background(), tt.opts)

			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "s-1", entries[0].SessionID)
			repo.AssertExpectations(t)
		})
	}

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockLogsRepository)
		repo.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("query failed"))

		entries, err := NewLoggingService(repo).QueryLogs(context.Background(), model.LogQueryOptions{})

		assert.Error(t, err)
		assert.Nil(t, entries)
	})
}

func TestLoggingService_CountLogs(t *testing.T) {
	repo := new(MockLogsRepository)
	repo.On("Count", mock.Anything, model.LogQueryOptions{Level: "error"}).Return(int64(7), nil)

	count, err := NewLoggingService(repo).CountLogs(context.Background(), model.LogQueryOptions{Level: "Error"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	repo.AssertExpectations(t)
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "abc", truncateText("abc", 5))
	assert.Equal(t, "ab", truncateText("abcdef", 2))
	// "ρ" is two bytes; cutting at 3 must not split the second one.
	assert.Equal(t, "ρ", truncateText("ρρ", 3))
}
