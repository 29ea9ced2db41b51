// Package app provides database initialization and setup.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/suppository-service/config"
	"github.com/guttosm/suppository-service/internal/circuitbreaker"
	"github.com/guttosm/suppository-service/internal/repository"
	"github.com/guttosm/suppository-service/internal/service"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB               *repository.MongoDB
	LoggingService   service.LoggingService
	CalculationsRepo repository.CalculationsRepositoryInterface
	SessionsRepo     repository.SessionsRepositoryInterface
	LogsCB           *circuitbreaker.CircuitBreaker
	CalculationsCB   *circuitbreaker.CircuitBreaker
	SessionsCB       *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the repositories behind
// circuit breakers. Returns nil if the database is disabled or unreachable.
func InitializeDatabase(cfg config.DatabaseConfig, sessionTTL time.Duration) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.SetLogsTTL(ctx, cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index")
	}
	if err := db.SetSessionTTL(ctx, sessionTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to set chat session TTL index")
	}

	logsCB := newBreaker(cfg, "mongodb-logs")
	calculationsCB := newBreaker(cfg, "mongodb-calculations")
	sessionsCB := newBreaker(cfg, "mongodb-sessions")

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	return &DatabaseComponents{
		DB:               db,
		LoggingService:   service.NewLoggingService(logsRepo),
		CalculationsRepo: repository.NewCalculationsRepositoryWithCircuitBreaker(repository.NewCalculationsRepository(db), calculationsCB),
		SessionsRepo:     repository.NewSessionsRepositoryWithCircuitBreaker(repository.NewSessionsRepository(db), sessionsCB),
		LogsCB:           logsCB,
		CalculationsCB:   calculationsCB,
		SessionsCB:       sessionsCB,
	}
}

func newBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsFailure:        countsAsOutage,
	})
}

// countsAsOutage ignores errors that say nothing about database health.
func countsAsOutage(err error) bool {
	return !errors.Is(err, mongo.ErrNoDocuments) && !mongo.IsDuplicateKeyError(err)
}

// Breakers returns the circuit breakers keyed by their readiness check name.
func (d *DatabaseComponents) Breakers() map[string]*circuitbreaker.CircuitBreaker {
	if d == nil {
		return nil
	}
	return map[string]*circuitbreaker.CircuitBreaker{
		"mongodb_logs":         d.LogsCB,
		"mongodb_calculations": d.CalculationsCB,
		"mongodb_sessions":     d.SessionsCB,
	}
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
