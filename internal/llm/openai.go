package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type openAIBackend struct {
	client *openai.Client
}

// NewOpenAIClient creates an LLMClient backed by the OpenAI chat completions
// API. cfg.Endpoint overrides the API base URL for compatible servers.
func NewOpenAIClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrProviderUnavailable)
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		oc.BaseURL = cfg.Endpoint
	}
	return newClient(cfg, &openAIBackend{client: openai.NewClientWithConfig(oc)}, observer), nil
}

func (b *openAIBackend) provider() string { return ProviderOpenAI }

func (b *openAIBackend) call(ctx context.Context, p callParams) (string, string, error) {
	var messages []openai.ChatCompletionMessage
	if p.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: p.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: p.Prompt,
	})

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.Model,
		Temperature: float32(p.Temperature),
		MaxTokens:   p.MaxTokens,
		Messages:    messages,
	})
	if err != nil {
		return "", "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("no response choices from openai")
	}
	return resp.Choices[0].Message.Content, resp.Model, nil
}

func (b *openAIBackend) ping(ctx context.Context) error {
	_, err := b.client.ListModels(ctx)
	return err
}
