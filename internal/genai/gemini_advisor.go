package genai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	domerrors "github.com/abitbot/abit-advisor-go/internal/errors"
)

// geminiAdvisor implements Advisor on the Gemini API. System messages
// become the system instruction; user messages become the contents.
type geminiAdvisor struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func newGeminiAdvisor(ctx context.Context, apiKey, model string, timeout time.Duration) (*geminiAdvisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiAdvisor{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

func (a *geminiAdvisor) Complete(ctx context.Context, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var systemParts []string
	var contents []*genai.Content
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			systemParts = append(systemParts, msg.Content)
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}

	config := &genai.GenerateContentConfig{}
	if len(systemParts) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(systemParts, "\n\n"), genai.RoleUser)
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		return "", domerrors.NewModelInvocationError(a.Provider(), a.model, err)
	}

	text := result.Text()
	if text == "" {
		return "", domerrors.NewModelInvocationError(a.Provider(), a.model, fmt.Errorf("response has no text"))
	}
	return text, nil
}

func (a *geminiAdvisor) Provider() string { return "gemini" }

func (a *geminiAdvisor) Close() {}
