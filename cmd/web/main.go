package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/EminDurmuSS/TestKgeRecipe/config"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/logging"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Caller: cfg.Log.Caller,
	})
	logging.Info().Str("env", string(cfg.Env)).Msg("Configuration loaded")

	srv := server.New(context.Background(), cfg)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logging.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		logging.Info().Str("signal", sig.String()).Msg("Received signal")
	}

	logging.Info().Msg("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		logging.Fatal().Err(err).Msg("Server shutdown error")
	}
	logging.Info().Msg("Server stopped")
}
