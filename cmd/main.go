// Package main is the entry point for the suppository-service application.
//
// @title           Suppository Base Service API
// @version         1.0.0
// @description     Calculates the suppository base required for a batch using the density-ratio displacement method.
//
//	Accepts structured inputs or a conversational session, explains each step and flags common mistakes.
//
// @contact.name   API Support
// @contact.url    https://github.com/guttosm/suppository-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 "Bearer <token>" from /api/auth/login. Required for history when instructor accounts exist.
//
// @tag.name        Calculations
// @tag.description Base calculation and CSV export
//
// @tag.name        Chat
// @tag.description Conversational input sessions
//
// @tag.name        History
// @tag.description Stored calculations
//
// @tag.name        Auth
// @tag.description Instructor sign-in
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/guttosm/suppository-service/docs" // swagger docs

	"github.com/guttosm/suppository-service/config"
	"github.com/guttosm/suppository-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server.Port, cfg.Server.RequestTimeout)
	server.OnShutdown(application.Close)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
