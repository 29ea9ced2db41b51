// Package app provides router configuration.
package app

import (
	"time"

	"github.com/guttosm/suppository-service/config"
	"github.com/guttosm/suppository-service/internal/http"
	"github.com/guttosm/suppository-service/internal/middleware"
	"github.com/guttosm/suppository-service/internal/service"
)

const (
	idempotencyCapacity = 10000
	idempotencyTTL      = 24 * time.Hour
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// Stop stops the background sweepers of the rate limiter and idempotency store.
func (r *RouterComponents) Stop() {
	if r.Config.RateLimiter != nil {
		r.Config.RateLimiter.Stop()
	}
	if r.Config.IdempotencyStore != nil {
		r.Config.IdempotencyStore.Stop()
	}
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	var loggingService service.LoggingService
	if dbComponents != nil {
		loggingService = dbComponents.LoggingService
	}

	handler := http.NewHandler(services.Calculator,
		http.WithHistory(services.History),
		http.WithLoggingService(loggingService),
	)

	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterChecker("calculator", http.CalculatorCheck(services.Calculator))
	if dbComponents != nil && dbComponents.DB != nil {
		healthHandler.RegisterChecker("mongodb", http.CheckerFunc(dbComponents.DB.HealthCheck))
	}
	for name, cb := range dbComponents.Breakers() {
		if cb != nil {
			healthHandler.RegisterCircuitBreaker(name, cb)
		}
	}

	routerCfg := http.DefaultRouterConfig()
	routerCfg.RateLimit = cfg.Server.RateLimit
	routerCfg.RateWindow = cfg.Server.RateWindow
	if cfg.Server.RateLimit > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}
	routerCfg.IdempotencyStore = middleware.NewIdempotencyStore(idempotencyCapacity, idempotencyTTL)
	routerCfg.EnableAuth = cfg.Auth.Enabled
	routerCfg.APIKeys = cfg.Auth.APIKeys
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins
	routerCfg.SwaggerUser = cfg.Server.SwaggerUser
	routerCfg.SwaggerPass = cfg.Server.SwaggerPass
	if cfg.Server.RequestTimeout > 0 {
		routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	}
	routerCfg.LoggingService = loggingService
	routerCfg.ChatService = services.Chat
	routerCfg.HistoryService = services.History
	routerCfg.AuthService = services.Auth

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
