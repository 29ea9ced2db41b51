// Package app provides service initialization.
package app

import (
	"github.com/guttosm/suppository-service/config"
	"github.com/guttosm/suppository-service/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Calculator service.Calculator
	Chat       service.ChatService
	History    service.HistoryService
	// Auth is nil unless instructor accounts are configured.
	Auth service.AuthService
	// memoryStore is set when chat sessions live in process memory.
	memoryStore *service.MemorySessionStore
}

// InitializeServices builds the business services. Chat sessions and
// calculation history use MongoDB when db is non-nil.
func InitializeServices(cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	opts := []service.Option{
		service.WithDefaults(cfg.Calculator.DefaultOverage, cfg.Calculator.DefaultRoundingStep),
	}
	if cfg.Cache.Size > 0 {
		opts = append(opts, service.WithCache(cfg.Cache.Size, cfg.Cache.TTL))
	}
	calculator := service.NewCalculatorService(opts...)

	components := &ServiceComponents{Calculator: calculator}

	var store service.SessionStore
	if db != nil {
		store = db.SessionsRepo
		components.History = service.NewHistoryService(db.CalculationsRepo)
	} else {
		components.memoryStore = service.NewMemorySessionStore(cfg.Chat.MaxSessions, cfg.Chat.SessionTTL)
		store = components.memoryStore
		components.History = service.NewHistoryService(nil)
	}
	components.Chat = service.NewChatService(store, calculator,
		service.WithMaxMessageLength(cfg.Chat.MaxMessageLength))

	if cfg.Auth.JWTEnabled() {
		tokens := service.NewTokenService(service.NewTokenConfigFromAuthConfig(cfg.Auth))
		components.Auth = service.NewAuthService(cfg.Auth.Instructors, tokens)
	}

	return components
}

// Stop releases background resources held by the services.
func (s *ServiceComponents) Stop() {
	if s.memoryStore != nil {
		s.memoryStore.Stop()
	}
}
