// Package main is the entry point for the LessonHub API server.
//
// main stays minimal: load the environment, build the logger and config,
// hand both to the server package, and run until shutdown. All actual
// logic lives in internal/.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/sakif/lessonhub/internal/config"
	"github.com/sakif/lessonhub/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// .env is optional — in deployment the environment is set directly.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	cfg := config.Load()

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		logger.Warn("GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET not set — google integration will fail")
	}

	srv, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
