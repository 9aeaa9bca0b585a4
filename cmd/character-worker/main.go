package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kago96/character-worker/internal/api"
	"github.com/kago96/character-worker/internal/broker"
	"github.com/kago96/character-worker/internal/config"
	"github.com/kago96/character-worker/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment from .env file")
	}

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("character-worker starting",
		"port", cfg.Port,
		"nats_url", cfg.NatsURL,
		"plan_ttl", cfg.PlanTTL,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Step 1: Connect to the character store.
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database connected")

	// Step 2: Optional NATS notifier for downstream engines.
	var publish broker.PublishFunc
	if cfg.NatsURL != "" {
		notifier, err := broker.Connect(cfg.NatsURL)
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer notifier.Close()
		publish = notifier.Publish
		notifier.AnnounceReady(cfg.Port)
		slog.Info("NATS notifier connected")
	}

	// Step 3: Start the HTTP API.
	srv := api.NewServer(db, publish, cfg.PlanTTL, cfg.Port)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("character-worker ready", "port", cfg.Port)

	// Wait for shutdown signal.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	slog.Info("shutting down", "signal", sig)
	cancel()
	slog.Info("character-worker stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
