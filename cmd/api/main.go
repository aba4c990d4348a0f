package main

import (
	"os"

	"github.com/ecakir/campushub/internal/pkg/logger"
	"github.com/ecakir/campushub/internal/server"
)

func main() {
	// NewServer orchestrates config, logging, database and route setup
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
