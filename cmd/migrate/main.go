package main

import (
	"os"

	"github.com/ardelio/heart-risk-api/internal/config"
	"github.com/ardelio/heart-risk-api/internal/repository/postgres"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	sourceURL := os.Getenv("MIGRATIONS_URL")
	if sourceURL == "" {
		sourceURL = "file://migrations"
	}

	log.Info().
		Str("host", cfg.Database.Host).
		Int("port", cfg.Database.Port).
		Msg("Running database migrations")

	if err := postgres.RunMigrations(cfg.Database.DSN(), sourceURL); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
