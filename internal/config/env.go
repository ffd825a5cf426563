// Package config defines environment variable keys for configuration.
package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Core (Required for the bot)
	EnvTelegramBotToken = "ABIT_TELEGRAM_BOT_TOKEN"

	// Server
	EnvPort            = "ABIT_PORT"
	EnvLogLevel        = "ABIT_LOG_LEVEL"
	EnvShutdownTimeout = "ABIT_SHUTDOWN_TIMEOUT"

	// Data
	EnvDataDir      = "ABIT_DATA_DIR"
	EnvProgramSlugs = "ABIT_PROGRAM_SLUGS"

	// Scraper
	EnvScraperTimeout    = "ABIT_SCRAPER_TIMEOUT"
	EnvScraperMaxRetries = "ABIT_SCRAPER_MAX_RETRIES"

	// LLM
	EnvLLMProvider   = "ABIT_LLM_PROVIDER"
	EnvLLMModel      = "ABIT_LLM_MODEL"
	EnvLLMBaseURL    = "ABIT_LLM_BASE_URL"
	EnvLLMTimeout    = "ABIT_LLM_TIMEOUT"
	EnvOpenAIAPIKey  = "ABIT_OPENAI_API_KEY"
	EnvGeminiAPIKey  = "ABIT_GEMINI_API_KEY"
	EnvLLMMaxPerHour = "ABIT_LLM_MAX_PER_HOUR"

	// Metrics
	EnvMetricsUsername = "ABIT_METRICS_USERNAME"
	EnvMetricsPassword = "ABIT_METRICS_PASSWORD"

	// Sentry Feature
	EnvSentryDSN         = "ABIT_SENTRY_DSN"
	EnvSentryEnvironment = "ABIT_SENTRY_ENVIRONMENT"

	// Better Stack Feature
	EnvBetterStackToken    = "ABIT_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "ABIT_BETTERSTACK_ENDPOINT"
)
