// Package config provides centralized timeout constants for the application.
//
// These values are tuned for the two workloads of this service:
//   - Ingestion: abit.itmo.ru page fetches and study plan PDF downloads,
//     which can be slow for large plans.
//   - Conversation: one blocking LLM call per completed flow. The design
//     requires a finite timeout on that call and no automatic retry.
package config

import "time"

// Scraper timeouts
const (
	// ScraperRequest is the timeout for a single HTTP request to the
	// admission site, including PDF downloads.
	ScraperRequest = 30 * time.Second

	// ScraperRetryInitial is the initial delay before retrying a failed
	// request. Uses exponential backoff: 2s -> 4s -> 8s ...
	ScraperRetryInitial = 2 * time.Second
)

// LLM timeouts
const (
	// LLMRequest bounds a single model invocation. When it elapses the
	// active conversation flow terminates with the apology message;
	// there is no retry.
	LLMRequest = 90 * time.Second
)

// Conversation timeouts
const (
	// UpdateProcessing bounds the handling of one Telegram update,
	// including the corpus read and the model invocation.
	UpdateProcessing = 2 * time.Minute

	// SessionIdleEviction is how long an inactive chat session is kept
	// before the session store may drop it.
	SessionIdleEviction = 24 * time.Hour
)
