// Package main is the entry point for the suppcalc command line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/guttosm/suppository-service/config"
	"github.com/guttosm/suppository-service/internal/app"
	"github.com/guttosm/suppository-service/internal/cli"
	"github.com/guttosm/suppository-service/internal/logger"
	"github.com/guttosm/suppository-service/internal/service"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()
	logger.Init("warn", true)

	deps := cli.Dependencies{
		Calculator: service.NewCalculatorService(
			service.WithDefaults(cfg.Calculator.DefaultOverage, cfg.Calculator.DefaultRoundingStep),
		),
		MaxMessageLength: cfg.Chat.MaxMessageLength,
	}

	if db := app.InitializeDatabase(cfg.Database, cfg.Chat.SessionTTL); db != nil {
		deps.History = service.NewHistoryService(db.CalculationsRepo)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.Close(ctx)
		}()
	}

	if err := cli.NewRootCommand(deps).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
