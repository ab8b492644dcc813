package main

import (
	"os"

	"vietour/config"
	"vietour/di"
	"vietour/helper"
	"vietour/shared/logger"
	"vietour/shared/money"
	"vietour/shared/timezone"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetOutput(cfg, os.Stdout)

	logger.SetLogLevel(cfg)

	log.Info().Str("timezone", timezone.GetLocation().String()).Str("locale", cfg.App.Locale).Msg("Starting vietour")

	money.SetLocale(cfg.App.Locale)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
