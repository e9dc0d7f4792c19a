package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/vsinha/prettybom/pkg/infrastructure/logging"
)

// Environment variables read by LoadSettings
const (
	EnvAddr           = "PRETTYBOM_ADDR"
	EnvLogLevel       = "PRETTYBOM_LOG_LEVEL"
	EnvLogFormat      = "PRETTYBOM_LOG_FORMAT"
	EnvMaxUploadBytes = "PRETTYBOM_MAX_UPLOAD_BYTES"
)

// Settings are the service-level settings taken from the environment
type Settings struct {
	Addr           string
	LogLevel       string
	LogFormat      string
	MaxUploadBytes int64
}

// DefaultSettings listens on :8080 with info json logs and a 10 MiB upload limit
func DefaultSettings() Settings {
	return Settings{
		Addr:           ":8080",
		LogLevel:       "info",
		LogFormat:      "json",
		MaxUploadBytes: 10 << 20,
	}
}

// LoadSettings loads the given .env files (".env" when none are given, ignored if missing)
// without overriding variables that are already set, then reads the settings.
func LoadSettings(envFiles ...string) (Settings, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to load .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Settings{}, fmt.Errorf("failed to load env files %v: %w", envFiles, err)
	}

	settings := DefaultSettings()
	if value := os.Getenv(EnvAddr); value != "" {
		settings.Addr = value
	}
	if value := os.Getenv(EnvLogLevel); value != "" {
		settings.LogLevel = value
	}
	if value := os.Getenv(EnvLogFormat); value != "" {
		settings.LogFormat = value
	}
	if value := os.Getenv(EnvMaxUploadBytes); value != "" {
		limit, err := strconv.ParseInt(value, 10, 64)
		if err != nil || limit <= 0 {
			return Settings{}, fmt.Errorf("%s must be a positive integer, got %q", EnvMaxUploadBytes, value)
		}
		settings.MaxUploadBytes = limit
	}
	return settings, nil
}

// Logging returns the logger configuration for these settings
func (s Settings) Logging() logging.Config {
	return logging.Config{
		Level:  s.LogLevel,
		Format: s.LogFormat,
		Fields: map[string]string{"service": "prettybom"},
	}
}
