package repository

import (
	"context"

	"github.com/guttosm/suppository-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// CalculationsRepositoryInterface defines the interface for calculation history operations.
type CalculationsRepositoryInterface interface {
	Create(ctx context.Context, record *model.CalculationRecord) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.CalculationRecord, error)
	Query(ctx context.Context, opts model.CalculationQueryOptions) ([]model.CalculationRecord, error)
	Count(ctx context.Context, opts model.CalculationQueryOptions) (int64, error)
}

// SessionsRepositoryInterface defines the interface for chat session persistence.
type SessionsRepositoryInterface interface {
	Get(ctx context.Context, id string) (*model.ChatSession, error)
	Save(ctx context.Context, session *model.ChatSession) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

var (
	_ LogsRepositoryInterface         = (*LogsRepository)(nil)
	_ CalculationsRepositoryInterface = (*CalculationsRepository)(nil)
	_ SessionsRepositoryInterface     = (*SessionsRepository)(nil)
)
