package repository

import (
	"context"
	"time"

	"github.com/guttosm/suppository-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionsRepository stores chat sessions keyed by session ID.
type SessionsRepository struct {
	collection *mongo.Collection
}

// NewSessionsRepository creates a new chat sessions repository.
func NewSessionsRepository(db *MongoDB) *SessionsRepository {
	return &SessionsRepository{collection: db.Sessions}
}

// Get returns the session, or nil when it does not exist or has expired.
func (r *SessionsRepository) Get(ctx context.Context, id string) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Save upserts the session and refreshes UpdatedAt, which drives the TTL index.
func (r *SessionsRepository) Save(ctx context.Context, session *model.ChatSession) error {
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": session.ID},
		session,
		options.Replace().SetUpsert(true),
	)
	return err
}

// Delete removes the session. Deleting a missing session is not an error.
func (r *SessionsRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Count returns the number of stored sessions.
func (r *SessionsRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.EstimatedDocumentCount(ctx)
}
