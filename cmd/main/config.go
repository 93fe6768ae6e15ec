package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/natefinch/atomic"

	"github.com/syzygy-tables/tablesinfo/pkg/pages"
)

// Config holds everything needed to run the site and admin servers.
// Values are read from the JSON file first and then overridden by SYZYGY_*
// environment variables.
type Config struct {
	SiteAddr     string `json:"site_addr" envconfig:"SITE_ADDR"`
	AdminAddr    string `json:"admin_addr" envconfig:"ADMIN_ADDR"`
	AdminToken   string `json:"admin_token" envconfig:"ADMIN_TOKEN"`
	LogLevel     string `json:"log_level" envconfig:"LOG_LEVEL"`
	Development  bool   `json:"development" envconfig:"DEVELOPMENT"`
	StaticDir    string `json:"static_dir" envconfig:"STATIC_DIR"`
	DatabasePath string `json:"database_path" envconfig:"DATABASE_PATH"`
	// StatsFile is imported into the database at startup when set.
	StatsFile string `json:"stats_file" envconfig:"STATS_FILE"`
	// EndgamesArchiveKiB is the advertised size of endgames.pgn.
	EndgamesArchiveKiB float64 `json:"endgames_archive_kib" envconfig:"ENDGAMES_ARCHIVE_KIB"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		SiteAddr:           ":5000",
		AdminAddr:          "127.0.0.1:5001",
		LogLevel:           "info",
		Development:        false,
		StaticDir:          "./static",
		DatabasePath:       "./data/tablesinfo.db",
		StatsFile:          "",
		EndgamesArchiveKiB: pages.EndgamesArchiveKiB,
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		var data []byte
		data, err = json.MarshalIndent(config, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
			// The server can still run with defaults.
			fmt.Printf("warning: failed to write default config file: %v\n", err)
		}
	} else if err = json.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err = envconfig.Process("syzygy", config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return config, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
