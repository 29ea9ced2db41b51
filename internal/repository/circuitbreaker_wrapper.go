package repository

import (
	"context"
	"errors"

	"github.com/guttosm/suppository-service/internal/circuitbreaker"
	"github.com/guttosm/suppository-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// guard runs fn through cb and hands back its result.
func guard[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = fn()
		return cbErr
	})
	return result, err
}

// LogsRepositoryWithCircuitBreaker wraps LogsRepository with circuit breaker protection.
// Writes are dropped while the circuit is open.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Create stores a log entry unless the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.LogEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores log entries unless the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	return guard(ctx, r.circuitBreaker, func() ([]model.LogEntry, error) {
		return r.repo.Query(ctx, opts)
	})
}

// Count counts log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return guard(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// CalculationsRepositoryWithCircuitBreaker wraps CalculationsRepository with circuit breaker protection.
// Inserts are dropped while the circuit is open; reads fail with ErrCircuitOpen.
type CalculationsRepositoryWithCircuitBreaker struct {
	repo           CalculationsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewCalculationsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewCalculationsRepositoryWithCircuitBreaker(repo CalculationsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *CalculationsRepositoryWithCircuitBreaker {
	return &CalculationsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Create stores a calculation record unless the circuit is open.
func (r *CalculationsRepositoryWithCircuitBreaker) Create(ctx context.Context, record *model.CalculationRecord) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, record)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// FindByID looks up a calculation record with circuit breaker protection.
func (r *CalculationsRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id primitive.ObjectID) (*model.CalculationRecord, error) {
	return guard(ctx, r.circuitBreaker, func() (*model.CalculationRecord, error) {
		return r.repo.FindByID(ctx, id)
	})
}

// Query lists calculation records with circuit breaker protection.
func (r *CalculationsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.CalculationQueryOptions) ([]model.CalculationRecord, error) {
	return guard(ctx, r.circuitBreaker, func() ([]model.CalculationRecord, error) {
		return r.repo.Query(ctx, opts)
	})
}

// Count counts calculation records with circuit breaker protection.
func (r *CalculationsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.CalculationQueryOptions) (int64, error) {
	return guard(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *CalculationsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// SessionsRepositoryWithCircuitBreaker wraps SessionsRepository with circuit breaker protection.
// Every operation fails with ErrCircuitOpen while the circuit is open, since
// a chat turn cannot proceed without its session.
type SessionsRepositoryWithCircuitBreaker struct {
	repo           SessionsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewSessionsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewSessionsRepositoryWithCircuitBreaker(repo SessionsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *SessionsRepositoryWithCircuitBreaker {
	return &SessionsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Get loads a session with circuit breaker protection.
func (r *SessionsRepositoryWithCircuitBreaker) Get(ctx context.Context, id string) (*model.ChatSession, error) {
	return guard(ctx, r.circuitBreaker, func() (*model.ChatSession, error) {
		return r.repo.Get(ctx, id)
	})
}

// Save stores a session with circuit breaker protection.
func (r *SessionsRepositoryWithCircuitBreaker) Save(ctx context.Context, session *model.ChatSession) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Save(ctx, session)
	})
}

// Delete removes a session with circuit breaker protection.
func (r *SessionsRepositoryWithCircuitBreaker) Delete(ctx context.Context, id string) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Delete(ctx, id)
	})
}

// Count counts sessions with circuit breaker protection.
func (r *SessionsRepositoryWithCircuitBreaker) Count(ctx context.Context) (int64, error) {
	return guard(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *SessionsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

var (
	_ LogsRepositoryInterface         = (*LogsRepositoryWithCircuitBreaker)(nil)
	_ CalculationsRepositoryInterface = (*CalculationsRepositoryWithCircuitBreaker)(nil)
	_ SessionsRepositoryInterface     = (*SessionsRepositoryWithCircuitBreaker)(nil)
)
