package service

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/guttosm/suppository-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrHistoryDisabled is returned by reads when no database is configured.
	ErrHistoryDisabled = errors.New("calculation history is disabled")
	// ErrCalculationNotFound is returned when a calculation ID does not exist.
	ErrCalculationNotFound = errors.New("calculation not found")
	// ErrInvalidCalculationID is returned for IDs that are not ObjectIDs.
	ErrInvalidCalculationID = errors.New("invalid calculation id")
)

// HistoryService records and lists completed calculations.
type HistoryService interface {
	// Record stores a calculation. It is a no-op when history is disabled.
	Record(ctx context.Context, record *model.CalculationRecord) error
	Get(ctx context.Context, id string) (*model.CalculationRecord, error)
	List(ctx context.Context, opts model.CalculationQueryOptions) ([]model.CalculationRecord, int64, error)
	Enabled() bool
}

// NewCalculationRecord builds a history record from an outcome.
func NewCalculationRecord(source, requestID, sessionID string, out Outcome) *model.CalculationRecord {
	return &model.CalculationRecord{
		RequestID: requestID,
		SessionID: sessionID,
		Source:    source,
		Result:    out.Result,
		Coaching:  out.Coaching,
		CreatedAt: time.Now().UTC(),
	}
}

// HistoryServiceImpl implements HistoryService over a calculations repository.
type HistoryServiceImpl struct {
	repo repository.CalculationsRepositoryInterface
}

// NewHistoryService returns a HistoryService. A nil repo yields a disabled
// service whose Record discards and whose reads return ErrHistoryDisabled.
func NewHistoryService(repo repository.CalculationsRepositoryInterface) HistoryService {
	if repo == nil {
		return disabledHistory{}
	}
	return &HistoryServiceImpl{repo: repo}
}

// Record implements HistoryService.
func (s *HistoryServiceImpl) Record(ctx context.Context, record *model.CalculationRecord) error {
	return s.repo.Create(ctx, record)
}

// Get implements HistoryService.
func (s *HistoryServiceImpl) Get(ctx context.Context, id string) (*model.CalculationRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidCalculationID
	}
	record, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrCalculationNotFound
	}
	return record, nil
}

// List implements HistoryService. It returns the page and the total match count.
func (s *HistoryServiceImpl) List(ctx context.Context, opts model.CalculationQueryOptions) ([]model.CalculationRecord, int64, error) {
	records, err := s.repo.Query(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Enabled implements HistoryService.
func (s *HistoryServiceImpl) Enabled() bool { return true }

type disabledHistory struct{}

func (disabledHistory) Record(context.Context, *model.CalculationRecord) error { return nil }

func (disabledHistory) Get(context.Context, string) (*model.CalculationRecord, error) {
	return nil, ErrHistoryDisabled
}

func (disabledHistory) List(context.Context, model.CalculationQueryOptions) ([]model.CalculationRecord, int64, error) {
	return nil, 0, ErrHistoryDisabled
}

func (disabledHistory) Enabled() bool { return false }
