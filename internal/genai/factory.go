package genai

import (
	"context"
	"fmt"

	"github.com/abitbot/abit-advisor-go/internal/config"
)

// NewAdvisor creates the advisor selected by configuration.
func NewAdvisor(ctx context.Context, cfg *config.Config) (Advisor, error) {
	switch cfg.LLMProvider {
	case "openai":
		return newOpenAIAdvisor(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMBaseURL, cfg.LLMTimeout)
	case "gemini":
		return newGeminiAdvisor(ctx, cfg.GeminiAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.LLMProvider)
	}
}
