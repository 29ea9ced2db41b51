//go:build !integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/suppository-service/internal/circuitbreaker"
	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errDown = errors.New("connection refused")

type stubLogs struct {
	err   error
	calls int
}

func (s *stubLogs) Create(context.Context, *model.LogEntry) error { s.calls++; return s.err }

func (s *stubLogs) CreateMany(context.Context, []*model.LogEntry) error {
	s.calls++
	return s.err
}

func (s *stubLogs) Query(context.Context, model.LogQueryOptions) ([]model.LogEntry, error) {
	s.calls++
	return []model.LogEntry{{Message: "ok"}}, s.err
}

func (s *stubLogs) Count(context.Context, model.LogQueryOptions) (int64, error) {
	s.calls++
	return 3, s.err
}

type stubCalculations struct {
	err   error
	calls int
}

func (s *stubCalculations) Create(context.Context, *model.CalculationRecord) error {
	s.calls++
	return s.err
}

func (s *stubCalculations) FindByID(context.Context, primitive.ObjectID) (*model.CalculationRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &model.CalculationRecord{Source: model.SourceAPI}, nil
}

func (s *stubCalculations) Query(context.Context, model.CalculationQueryOptions) ([]model.CalculationRecord, error) {
	s.calls++
	return nil, s.err
}

func (s *stubCalculations) Count(context.Context, model.CalculationQueryOptions) (int64, error) {
	s.calls++
	return 0, s.err
}

type stubSessions struct {
	err   error
	calls int
}

func (s *stubSessions) Get(_ context.Context, id string) (*model.ChatSession, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &model.ChatSession{ID: id}, nil
}

func (s *stubSessions) Save(context.Context, *model.ChatSession) error { s.calls++; return s.err }

func (s *stubSessions) Delete(context.Context, string) error { s.calls++; return s.err }

func (s *stubSessions) Count(context.Context) (int64, error) { s.calls++; return 1, s.err }

func newTestBreaker(name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		Name:             name,
	})
}

func TestLogsRepositoryWithCircuitBreaker(t *testing.T) {
	ctx := context.Background()
	stub := &stubLogs{err: errDown}
	repo := NewLogsRepositoryWithCircuitBreaker(stub, newTestBreaker("test_logs"))

	// First failure trips the breaker and is returned.
	assert.ErrorIs(t, repo.Create(ctx, &model.LogEntry{}), errDown)
	require.True(t, repo.GetCircuitBreaker().IsOpen())

	t.Run("writes are dropped while open", func(t *testing.T) {
		before := stub.calls
		assert.NoError(t, repo.Create(ctx, &model.LogEntry{}))
		assert.NoError(t, repo.CreateMany(ctx, []*model.LogEntry{{}}))
		assert.Equal(t, before, stub.calls)
	})

	t.Run("reads fail while open", func(t *testing.T) {
		_, err := repo.Query(ctx, model.LogQueryOptions{})
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
		_, err = repo.Count(ctx, model.LogQueryOptions{})
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	})
}

func TestLogsRepositoryWithCircuitBreaker_PassThrough(t *testing.T) {
	ctx := context.Background()
	repo := NewLogsRepositoryWithCircuitBreaker(&stubLogs{}, newTestBreaker("test_logs_ok"))

	entries, err := repo.Query(ctx, model.LogQueryOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ok", entries[0].Message)

	count, err := repo.Count(ctx, model.LogQueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestCalculationsRepositoryWithCircuitBreaker(t *testing.T) {
	ctx := context.Background()

	t.Run("pass through when closed", func(t *testing.T) {
		repo := NewCalculationsRepositoryWithCircuitBreaker(&stubCalculations{}, newTestBreaker("test_calc_ok"))
		record, err := repo.FindByID(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.Equal(t, model.SourceAPI, record.Source)
		assert.NoError(t, repo.Create(ctx, &model.CalculationRecord{}))
	})

	t.Run("insert dropped and reads rejected when open", func(t *testing.T) {
		stub := &stubCalculations{err: errDown}
		repo := NewCalculationsRepositoryWithCircuitBreaker(stub, newTestBreaker("test_calc_down"))

		_, err := repo.Query(ctx, model.CalculationQueryOptions{})
		assert.ErrorIs(t, err, errDown)
		require.True(t, repo.GetCircuitBreaker().IsOpen())

		assert.NoError(t, repo.Create(ctx, &model.CalculationRecord{}))
		_, err = repo.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
		_, err = repo.Count(ctx, model.CalculationQueryOptions{})
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
		assert.Equal(t, 1, stub.calls)
	})
}

func TestSessionsRepositoryWithCircuitBreaker(t *testing.T) {
	ctx := context.Background()

	t.Run("pass through when closed", func(t *testing.T) {
		repo := NewSessionsRepositoryWithCircuitBreaker(&stubSessions{}, newTestBreaker("test_sessions_ok"))
		session, err := repo.Get(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, "abc", session.ID)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("every operation fails when open", func(t *testing.T) {
		repo := NewSessionsRepositoryWithCircuitBreaker(&stubSessions{err: errDown}, newTestBreaker("test_sessions_down"))
		assert.ErrorIs(t, repo.Save(ctx, &model.ChatSession{ID: "abc"}), errDown)

		_, err := repo.Get(ctx, "abc")
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
		assert.ErrorIs(t, repo.Save(ctx, &model.ChatSession{ID: "abc"}), circuitbreaker.ErrCircuitOpen)
		assert.ErrorIs(t, repo.Delete(ctx, "abc"), circuitbreaker.ErrCircuitOpen)
	})
}
