package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alexanderramin/itinera/internal/llm"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

type Config struct {
	Env            string
	DBPath         string
	HTTPAddr       string
	LogLevel       slog.Level
	LogFormat      string
	Workers        int
	MaxRefinements int
	LLM            llm.LLMConfig
}

// Load reads configuration from the environment. Outside production a .env
// file in the working directory is loaded first; variables already set in
// the environment take precedence over it.
func Load() (Config, error) {
	if getEnv("ITINERA_ENV", "development") != "production" {
		_ = godotenv.Load()
	}

	cfg := Config{
		Env:            getEnv("ITINERA_ENV", "development"),
		DBPath:         os.Getenv("ITINERA_DB"),
		HTTPAddr:       getEnv("ITINERA_HTTP_ADDR", ":8080"),
		LogFormat:      strings.ToLower(getEnv("ITINERA_LOG_FORMAT", LogFormatText)),
		Workers:        getEnvInt("ITINERA_WORKERS", 0),
		MaxRefinements: getEnvInt("ITINERA_MAX_REFINEMENTS", 0),
		LLM:            llm.LoadConfig(),
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".itinera", "itinera.db")
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("ITINERA_LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("ITINERA_LOG_LEVEL: %w", err)
	}
	if cfg.LogFormat != LogFormatText && cfg.LogFormat != LogFormatJSON {
		return Config{}, fmt.Errorf("ITINERA_LOG_FORMAT must be %q or %q, got %q", LogFormatText, LogFormatJSON, cfg.LogFormat)
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getEnvInt returns fallback for unset or unparsable values.
func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}
