package main

import (
	"gearshare/config"
	"gearshare/di"
	"gearshare/helper"
	"gearshare/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title GearShare API
// @version 1.0
// @description Peer-to-peer gear sharing service: list items, request gear, book and review it.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
