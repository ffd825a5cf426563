// Package genai integrates the advisor with LLM APIs (OpenAI and
// Gemini). Prompt assembly lives elsewhere; this package only carries
// ordered role-tagged messages to a provider and returns the reply.
package genai

import "context"

// Role tags a prompt message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one role-tagged block of an assembled prompt.
type Message struct {
	Role    Role
	Content string
}

// Advisor generates replies from assembled prompts.
type Advisor interface {
	// Complete sends the ordered messages and returns the model reply.
	Complete(ctx context.Context, messages []Message) (string, error)

	// Provider returns the provider name for logging and metrics.
	Provider() string

	// Close releases provider resources.
	Close()
}

// Default models per provider. Overridable via configuration.
const (
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.0-flash"
)
