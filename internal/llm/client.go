package llm

import (
	"context"
	"fmt"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the provider is reachable.
	Available(ctx context.Context) bool
}

// callParams is a GenerateRequest with task defaults applied.
type callParams struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// backend performs a single provider call. Retries, timeouts and
// observation live in client.
type backend interface {
	provider() string
	call(ctx context.Context, p callParams) (text, model string, err error)
	ping(ctx context.Context) error
}

type client struct {
	cfg      LLMConfig
	backend  backend
	observer Observer
}

func newClient(cfg LLMConfig, b backend, observer Observer) *client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &client{cfg: cfg, backend: b, observer: observer}
}

// NewClient builds the client for cfg.Provider. A disabled config yields a
// client whose calls fail with ErrProviderUnavailable.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if !cfg.Enabled {
		return disabledClient{}, nil
	}
	switch cfg.Provider {
	case ProviderOllama, "":
		return NewOllamaClient(cfg, observer), nil
	case ProviderOpenAI:
		return NewOpenAIClient(cfg, observer)
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, observer)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func (c *client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	params := callParams{
		Model:       c.cfg.ModelName(),
		System:      req.SystemPrompt,
		Prompt:      req.UserPrompt,
		Temperature: taskCfg.Temperature,
		MaxTokens:   taskCfg.MaxTokens,
	}
	if req.Temperature != nil {
		params.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		params.MaxTokens = *req.MaxTokens
	}

	timeout := time.Duration(c.cfg.TaskTimeout(req.Task)) * time.Millisecond

	var lastErr error
	timedOut := false
	attempts := 1 + c.cfg.MaxRetries

	// Each attempt gets its own task timeout; a cancelled parent stops retries.
	for i := 0; i < attempts; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		text, model, err := c.backend.call(attemptCtx, params)
		timedOut = attemptCtx.Err() != nil
		cancel()

		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Provider:  c.backend.provider(),
				Task:      req.Task,
				Model:     params.Model,
				LatencyMs: latency,
				Attempts:  i + 1,
				Success:   true,
			})
			return &GenerateResponse{
				Text:      text,
				Model:     model,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	var finalErr error
	switch {
	case timedOut || ctx.Err() != nil:
		finalErr = ErrTimeout
	case isConnectionError(lastErr):
		finalErr = fmt.Errorf("%w: %v", ErrProviderUnavailable, lastErr)
	default:
		finalErr = fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}

	c.observer.OnCallComplete(LLMCallEvent{
		Provider:  c.backend.provider(),
		Task:      req.Task,
		Model:     params.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  attempts,
		Success:   false,
		ErrorCode: errorCode(finalErr),
	})
	return nil, finalErr
}

func (c *client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.backend.ping(ctx) == nil
}

type disabledClient struct{}

func (disabledClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, fmt.Errorf("%w: llm is disabled (set ITINERA_LLM_ENABLED=true)", ErrProviderUnavailable)
}

func (disabledClient) Available(context.Context) bool { return false }
