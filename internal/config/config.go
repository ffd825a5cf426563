// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, ingestion mode, timeouts, and data locations.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Mode selects which configuration requirements apply.
type Mode int

const (
	// BotMode is the interactive bot server: Telegram credentials and an
	// LLM provider are required.
	BotMode Mode = iota
	// IngestMode is the one-shot ingestion CLI: only scraper and data
	// settings are required.
	IngestMode
)

// Config holds all application configuration
type Config struct {
	// Telegram Bot Configuration
	TelegramBotToken string

	// LLM Configuration
	LLMProvider  string // "openai" or "gemini" (default: "openai")
	LLMModel     string // Model name (empty = provider default)
	LLMBaseURL   string // Optional OpenAI-compatible base URL override
	LLMTimeout   time.Duration
	OpenAIAPIKey string
	GeminiAPIKey string

	// LLMMaxPerHour caps model invocations per chat per hour.
	LLMMaxPerHour int

	// Metrics Authentication
	MetricsUsername string // Username for /metrics Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics Basic Auth (empty = no auth)

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir      string   // Directory for the SQLite database and downloaded plans
	ProgramSlugs []string // Program identifiers to ingest and serve

	// Scraper Configuration
	ScraperTimeout    time.Duration
	ScraperMaxRetries int

	// Sentry Configuration
	SentryDSN         string
	SentryEnvironment string

	// Better Stack Configuration
	BetterStackToken    string
	BetterStackEndpoint string
}

// defaultProgramSlugs are the programs served when ABIT_PROGRAM_SLUGS is unset.
var defaultProgramSlugs = []string{"ai_product", "ai"}

// Load reads configuration for the bot server.
func Load() (*Config, error) {
	return LoadForMode(BotMode)
}

// LoadForMode reads configuration from environment variables, applying the
// validation rules of the given mode. It attempts to load a .env file
// first, then reads from env vars.
func LoadForMode(mode Mode) (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken: getEnv(EnvTelegramBotToken, ""),

		LLMProvider:  getEnv(EnvLLMProvider, "openai"),
		LLMModel:     getEnv(EnvLLMModel, ""),
		LLMBaseURL:   getEnv(EnvLLMBaseURL, ""),
		LLMTimeout:   getDurationEnv(EnvLLMTimeout, LLMRequest),
		OpenAIAPIKey: getEnv(EnvOpenAIAPIKey, ""),
		GeminiAPIKey: getEnv(EnvGeminiAPIKey, ""),

		LLMMaxPerHour: getIntEnv(EnvLLMMaxPerHour, 30),

		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		Port:            getEnv(EnvPort, "10000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),

		DataDir:      getEnv(EnvDataDir, getDefaultDataDir()),
		ProgramSlugs: getSliceEnv(EnvProgramSlugs, defaultProgramSlugs),

		ScraperTimeout:    getDurationEnv(EnvScraperTimeout, ScraperRequest),
		ScraperMaxRetries: getIntEnv(EnvScraperMaxRetries, 3),

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),
	}

	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if required configuration values are set for the mode.
func (c *Config) Validate(mode Mode) error {
	var errs []error

	if mode == BotMode {
		if c.TelegramBotToken == "" {
			errs = append(errs, errors.New(EnvTelegramBotToken+" is required"))
		}
		if !c.HasLLMProvider() {
			errs = append(errs, errors.New("an LLM API key is required ("+EnvOpenAIAPIKey+" or "+EnvGeminiAPIKey+")"))
		}
		if c.Port == "" {
			errs = append(errs, errors.New(EnvPort+" is required"))
		}
		if c.LLMTimeout <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvLLMTimeout, c.LLMTimeout))
		}
		if c.LLMMaxPerHour <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvLLMMaxPerHour, c.LLMMaxPerHour))
		}
	}

	switch c.LLMProvider {
	case "openai", "gemini":
	default:
		errs = append(errs, fmt.Errorf("%s must be openai or gemini, got %q", EnvLLMProvider, c.LLMProvider))
	}

	if c.DataDir == "" {
		errs = append(errs, errors.New(EnvDataDir+" is required"))
	}
	if len(c.ProgramSlugs) == 0 {
		errs = append(errs, errors.New(EnvProgramSlugs+" must list at least one slug"))
	}
	if c.ScraperTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvScraperTimeout, c.ScraperTimeout))
	}
	if c.ScraperMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %d", EnvScraperMaxRetries, c.ScraperMaxRetries))
	}

	return errors.Join(errs...)
}

// HasLLMProvider returns true if at least one LLM provider is configured.
func (c *Config) HasLLMProvider() bool {
	return c.OpenAIAPIKey != "" || c.GeminiAPIKey != ""
}

// SQLitePath returns the full path to the SQLite database file.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "programs.db")
}

// DocumentDir returns the directory where downloaded study plans are stored.
func (c *Config) DocumentDir() string {
	return filepath.Join(c.DataDir, "programs")
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getSliceEnv retrieves a comma-separated list with fallback to default value.
// Empty elements are dropped, whitespace trimmed.
func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// getDefaultDataDir returns platform-specific default data directory
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}
