// Command lazyspender-emulator runs a local LazySpender API server for
// development and testing.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lazyspender/lazyspender-go/internal/emulator/api"
	"github.com/lazyspender/lazyspender-go/internal/emulator/seed"
	"github.com/lazyspender/lazyspender-go/internal/emulator/store"
)

const (
	defaultPort   = "8080"
	defaultDBPath = "./data/lazyspender.db"
)

func main() {
	// Setup structured JSON logging.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Get configuration from environment variables.
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	seedFile := os.Getenv("SEED_FILE")

	// Initialize store.
	st, err := store.New(dbPath)
	if err != nil {
		slog.Error("failed to initialize store", "error", err, "db_path", dbPath)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	slog.Info("database initialized", "db_path", dbPath)

	// Load fixtures when a seed file is configured.
	if seedFile != "" {
		data, err := seed.Load(seedFile)
		if err != nil {
			slog.Error("failed to load seed file", "error", err, "seed_file", seedFile)
			os.Exit(1)
		}
		count, err := seed.Apply(st, data)
		if err != nil {
			slog.Error("failed to apply seed data", "error", err, "seed_file", seedFile)
			os.Exit(1)
		}
		slog.Info("seed data loaded", "seed_file", seedFile, "records", count)
	}

	// Start server.
	addr := fmt.Sprintf(":%s", port)
	slog.Info("starting lazyspender emulator", "addr", addr, "port", port)

	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(st),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		slog.Info("shutting down server")
		if err := server.Close(); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
