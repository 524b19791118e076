package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskParseFeedback TaskType = "parse_feedback"
	TaskRevisePlan    TaskType = "revise_plan"
)

// Supported providers.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const (
	defaultOllamaEndpoint = "http://localhost:11434"
	defaultOllamaModel    = "llama3.2"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultGeminiModel    = "gemini-2.5-flash-lite"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   string
	Endpoint   string // empty uses the provider default
	Model      string // empty uses the provider default
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Provider:   ProviderOllama,
		TimeoutMs:  30000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskParseFeedback: {Temperature: 0.3, MaxTokens: 2048, TimeoutMs: 30000},
			TaskRevisePlan:    {Temperature: 0.7, MaxTokens: 8192, TimeoutMs: 120000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("ITINERA_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ITINERA_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ITINERA_LLM_PROVIDER"); v != "" {
		cfg.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("ITINERA_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("ITINERA_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("ITINERA_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("ITINERA_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	case ProviderGemini:
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	applyTaskTimeoutEnv(&cfg, TaskParseFeedback, "ITINERA_LLM_PARSE_FEEDBACK_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskRevisePlan, "ITINERA_LLM_REVISE_PLAN_TIMEOUT_MS")

	return cfg
}

// ModelName returns the configured model or the provider default.
func (c LLMConfig) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderOpenAI:
		return defaultOpenAIModel
	case ProviderGemini:
		return defaultGeminiModel
	default:
		return defaultOllamaModel
	}
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
