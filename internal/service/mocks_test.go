package service

import (
	"context"

	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/guttosm/suppository-service/internal/repository"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ repository.LogsRepositoryInterface = (*MockLogsRepository)(nil)

type MockLogsRepository struct {
	mock.Mock
}

func (m *MockLogsRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogsRepository) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLogsRepository) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	entries, _ := args.Get(0).([]model.LogEntry)
	return entries, args.Error(1)
}

func (m *MockLogsRepository) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}

type MockCalculationsRepository struct {
	mock.Mock
}

func (m *MockCalculationsRepository) Create(ctx context.Context, record *model.CalculationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCalculationsRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.CalculationRecord, error) {
	args := m.Called(ctx, id)
	record, _ := args.Get(0).(*model.CalculationRecord)
	return record, args.Error(1)
}

func (m *MockCalculationsRepository) Query(ctx context.Context, opts model.CalculationQueryOptions) ([]model.CalculationRecord, error) {
	args := m.Called(ctx, opts)
	records, _ := args.Get(0).([]model.CalculationRecord)
	return records, args.Error(1)
}

func (m *MockCalculationsRepository) Count(ctx context.Context, opts model.CalculationQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*model.ChatSession, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*model.ChatSession)
	return session, args.Error(1)
}

func (m *MockSessionStore) Save(ctx context.Context, session *model.ChatSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}

type MockOutcomeCache struct {
	mock.Mock
}

func (m *MockOutcomeCache) Get(key string) (Outcome, bool) {
	args := m.Called(key)
	out, _ := args.Get(0).(Outcome)
	return out, args.Bool(1)
}

func (m *MockOutcomeCache) Set(key string, value Outcome) { m.Called(key, value) }
func (m *MockOutcomeCache) Invalidate(key string)        { m.Called(key) }
func (m *MockOutcomeCache) Clear()                       { m.Called() }
func (m *MockOutcomeCache) Stop()                        { m.Called() }

func (m *MockOutcomeCache) Len() int {
	return m.Called().Int(0)
}
