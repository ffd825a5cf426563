package genai

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	domerrors "github.com/abitbot/abit-advisor-go/internal/errors"
)

// openaiAdvisor implements Advisor on the OpenAI chat completion API.
// A custom base URL makes it work with any OpenAI-compatible provider.
type openaiAdvisor struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

func newOpenAIAdvisor(apiKey, model, baseURL string, timeout time.Duration) (*openaiAdvisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &openaiAdvisor{
		client:  openai.NewClient(opts...),
		model:   model,
		timeout: timeout,
	}, nil
}

func (a *openaiAdvisor) Complete(ctx context.Context, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:    a.model,
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
	}
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(msg.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(msg.Content))
		}
	}

	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", domerrors.NewModelInvocationError(a.Provider(), a.model, err)
	}
	if len(resp.Choices) == 0 {
		return "", domerrors.NewModelInvocationError(a.Provider(), a.model, fmt.Errorf("response has no choices"))
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *openaiAdvisor) Provider() string { return "openai" }

func (a *openaiAdvisor) Close() {}
