package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/syzygy-tables/tablesinfo/pkg/tablebase"
)

var CLI struct {
	Config      string `short:"c" help:"Configuration file path" default:"config.json"`
	Development bool   `short:"d" help:"Show the development banner on every page"`
	LogLevel    string `help:"Override the configured log level (debug, info, warn, error)"`
}

func main() {
	kong.Parse(&CLI, kong.Description("Serves the Syzygy endgame tablebase info pages."))
	// A missing .env file is fine, the environment may be set elsewhere.
	_ = godotenv.Load()

	baseLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	actionChan := make(chan string, 1)

	go func() {
		osSignalChan := make(chan os.Signal, 1)
		signal.Notify(osSignalChan, syscall.SIGINT, syscall.SIGTERM)
		<-osSignalChan
		baseLogger.Info("OS signal received, initiating shutdown.")
		actionChan <- actionShutdown
	}()

	for {
		action, err := run(actionChan)
		if err != nil {
			baseLogger.Error("An error occurred during server run, shutting down.", "error", err)
			os.Exit(1)
		}
		if action != actionRestart {
			break
		}
		baseLogger.Info("--- Server Restarting ---")
	}

	baseLogger.Info("Server has shut down.")
}

// loadRunConfig loads the config file and applies command line overrides.
func loadRunConfig() (*Config, error) {
	config, err := LoadConfig(CLI.Config)
	if err != nil {
		return nil, err
	}
	if CLI.Development {
		config.Development = true
	}
	if CLI.LogLevel != "" {
		config.LogLevel = CLI.LogLevel
	}
	return config, nil
}

// run hosts the site and admin servers, and returns whenever they are shut
// down or restarted.
func run(actionChan chan string) (string, error) {
	config, err := loadRunConfig()
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)}))
	logger.Info("Starting server cycle...", "development", config.Development)

	if err = os.MkdirAll(filepath.Dir(config.DatabasePath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := openDB(config.DatabasePath)
	if err != nil {
		return "", fmt.Errorf("failed to initialize database: %w", err)
	}

	if err = tablebase.SetupSchema(db); err != nil {
		_ = db.Close()
		return "", fmt.Errorf("failed to setup endgame stats schema: %w", err)
	}
	if err = setupHitsSchema(db); err != nil {
		logger.Error("Failed to setup page hits schema", "error", err)
	}

	server, err := NewServer(config, logger, db, actionChan)
	if err != nil {
		_ = db.Close()
		return "", fmt.Errorf("failed to create server object: %w", err)
	}

	siteHttpServer := &http.Server{Addr: config.SiteAddr, Handler: server.siteMux, ReadHeaderTimeout: 10 * time.Second}
	adminHttpServer := &http.Server{Addr: config.AdminAddr, Handler: server.adminMux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		logger.Info("Starting admin server", "address", adminHttpServer.Addr)
		if err := adminHttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Admin server failed", "error", err)
		}
	}()

	go func() {
		logger.Info("Starting site server", "address", siteHttpServer.Addr)
		if err := siteHttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Site server failed", "error", err)
		}
	}()

	action := <-actionChan

	logger.Info("Stopping servers for " + action + "...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = adminHttpServer.Shutdown(ctx); err != nil {
		logger.Error("Admin server shutdown failed", "error", err)
	}
	if err = siteHttpServer.Shutdown(ctx); err != nil {
		logger.Error("Site server shutdown failed", "error", err)
	}
	logger.Info("HTTP servers stopped.")

	logger.Info("Closing database connection.")
	if err = db.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	}

	return action, nil
}
