package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/arjunm/placementpulse/internal/pkg/logger"
	"github.com/arjunm/placementpulse/internal/server"
)

func main() {
	// Load .env if present (ok if missing in prod)
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
