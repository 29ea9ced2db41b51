package repository

import (
	"context"
	"time"

	"github.com/guttosm/suppository-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxCalculationPage caps a single history listing.
const maxCalculationPage = 200

// CalculationsRepository stores calculation history.
type CalculationsRepository struct {
	collection *mongo.Collection
}

// NewCalculationsRepository creates a new calculations repository.
func NewCalculationsRepository(db *MongoDB) *CalculationsRepository {
	return &CalculationsRepository{collection: db.Calculations}
}

// Create inserts a calculation record, assigning an ID and creation time when unset.
func (r *CalculationsRepository) Create(ctx context.Context, record *model.CalculationRecord) error {
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// FindByID returns the record with the given ID, or nil when none exists.
func (r *CalculationsRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.CalculationRecord, error) {
	var record model.CalculationRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Query returns records newest first.
func (r *CalculationsRepository) Query(ctx context.Context, opts model.CalculationQueryOptions) ([]model.CalculationRecord, error) {
	limit := opts.Limit
	if limit <= 0 || limit > maxCalculationPage {
		limit = maxCalculationPage
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, calculationFilter(opts), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	records := make([]model.CalculationRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns the number of records matching opts. Limit and Skip are ignored.
func (r *CalculationsRepository) Count(ctx context.Context, opts model.CalculationQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, calculationFilter(opts))
}

func calculationFilter(opts model.CalculationQueryOptions) bson.M {
	filter := bson.M{}
	if opts.Source != "" {
		filter["source"] = opts.Source
	}
	if opts.SessionID != "" {
		filter["session_id"] = opts.SessionID
	}
	if tf := timeRange(opts.StartTime, opts.EndTime); tf != nil {
		filter["created_at"] = tf
	}
	return filter
}
