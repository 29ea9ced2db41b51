package app

import (
	"github.com/guttosm/suppository-service/config"
	"github.com/guttosm/suppository-service/internal/logger"
)

// InitializeLogger configures the global logger from the log settings.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
}
