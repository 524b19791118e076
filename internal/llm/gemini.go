package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type geminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates an LLMClient backed by the Gemini API.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrProviderUnavailable)
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	gc, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return newClient(cfg, &geminiBackend{client: gc, model: cfg.ModelName()}, observer), nil
}

func (b *geminiBackend) provider() string { return ProviderGemini }

func (b *geminiBackend) call(ctx context.Context, p callParams) (string, string, error) {
	model := b.client.GenerativeModel(p.Model)
	if p.System != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(p.System))
	}
	model.SetTemperature(float32(p.Temperature))
	if p.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(p.MaxTokens))
	}
	model.ResponseMIMEType = "application/json"

	res, err := model.GenerateContent(ctx, genai.Text(p.Prompt))
	if err != nil {
		return "", "", fmt.Errorf("gemini request failed: %w", err)
	}

	var sb strings.Builder
	if len(res.Candidates) > 0 && res.Candidates[0].Content != nil {
		for _, part := range res.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
	}
	if sb.Len() == 0 {
		return "", "", fmt.Errorf("empty response from gemini")
	}
	return sb.String(), p.Model, nil
}

func (b *geminiBackend) ping(ctx context.Context) error {
	_, err := b.client.GenerativeModel(b.model).Info(ctx)
	return err
}
