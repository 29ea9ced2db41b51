// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/config"
	"github.com/guttosm/suppository-service/internal/http"
	"github.com/guttosm/suppository-service/internal/middleware"
	"github.com/rs/zerolog/log"
)

// App is the wired application.
type App struct {
	Router   *gin.Engine
	services *ServiceComponents
	database *DatabaseComponents
	routes   *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	InitializeLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		log.Warn().Err(err).Msg("Configuration problems detected")
	}

	dbComponents := InitializeDatabase(cfg.Database, cfg.Chat.SessionTTL)
	if dbComponents != nil {
		middleware.InitAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	services := InitializeServices(cfg, dbComponents)
	routes := InitializeRouter(services, dbComponents, cfg)

	log.Info().
		Bool("database", dbComponents != nil).
		Bool("history", services.History.Enabled()).
		Bool("instructor_auth", services.Auth != nil).
		Bool("api_keys", cfg.Auth.Enabled).
		Msg("Application initialized")

	return &App{
		Router:   http.NewRouter(routes.Handler, routes.HealthHandler, routes.Config),
		services: services,
		database: dbComponents,
		routes:   routes,
	}
}

// Close flushes queued log entries and releases background resources.
func (a *App) Close(ctx context.Context) error {
	a.routes.Stop()
	a.services.Stop()
	middleware.StopAsyncLogger()
	return a.database.Close(ctx)
}
