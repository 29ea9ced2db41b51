package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Calculation sources recorded with each history entry.
const (
	SourceAPI  = "api"
	SourceChat = "chat"
	SourceCLI  = "cli"
)

// CalculationRecord is a stored calculation for instructor review.
type CalculationRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	SessionID string             `bson:"session_id,omitempty" json:"session_id,omitempty"`
	Source    string             `bson:"source" json:"source"`
	Result    CalculationResult  `bson:"result" json:"result"`
	Coaching  CoachingReport     `bson:"coaching" json:"coaching"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// CalculationQueryOptions filters calculation history listings.
type CalculationQueryOptions struct {
	Source    string
	SessionID string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Skip      int
}
