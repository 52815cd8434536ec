package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// DefaultGeminiModel is the model used when none is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// Config selects and configures a provider.
type Config struct {
	Provider string

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including provider-side retries.
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Gemini:     GeminiConfig{Model: DefaultGeminiModel},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv layers ALPHABETZ_* variables over DefaultConfig. The
// vendor-standard key variables (GEMINI_API_KEY and friends) are used when
// the prefixed ones are unset. It is cheap and is called per gateway request
// so a key set after start-up is picked up.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("ALPHABETZ_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	cfg.Gemini.APIKey = firstEnv("ALPHABETZ_GEMINI_API_KEY", "GEMINI_API_KEY")
	if m := os.Getenv("ALPHABETZ_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	cfg.OpenAI.APIKey = firstEnv("ALPHABETZ_OPENAI_API_KEY", "OPENAI_API_KEY")
	if m := os.Getenv("ALPHABETZ_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	cfg.OpenAI.BaseURL = os.Getenv("ALPHABETZ_OPENAI_BASE_URL")

	cfg.Anthropic.APIKey = firstEnv("ALPHABETZ_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	if m := os.Getenv("ALPHABETZ_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	cfg.OpenRouter.APIKey = firstEnv("ALPHABETZ_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")
	if m := os.Getenv("ALPHABETZ_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	return cfg
}

// DiscoverConfig picks the first provider whose vendor key is set, in the
// order Gemini, OpenAI, Anthropic, OpenRouter.
func DiscoverConfig() (Config, bool) {
	cfg := ConfigFromEnv()
	if os.Getenv("ALPHABETZ_LLM_PROVIDER") != "" {
		return cfg, cfg.Validate() == nil
	}

	switch {
	case cfg.Gemini.APIKey != "":
		cfg.Provider = ProviderGemini
	case cfg.OpenAI.APIKey != "":
		cfg.Provider = ProviderOpenAI
	case cfg.Anthropic.APIKey != "":
		cfg.Provider = ProviderAnthropic
	case cfg.OpenRouter.APIKey != "":
		cfg.Provider = ProviderOpenRouter
	default:
		return cfg, false
	}
	return cfg, true
}

// SingleAttempt turns off provider-side retries. The sentence converter
// owns its retry policy (throttling only), so its provider is built with it.
func (c Config) SingleAttempt() Config {
	c.Retry.MaxAttempts = 1
	return c
}

// KeyEnv names the environment variable holding the selected provider's key.
func (c Config) KeyEnv() string {
	switch c.Provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

// Model returns the model configured for the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	case ProviderMock:
		return "mock"
	default:
		return c.Gemini.Model
	}
}

// Validate checks that the selected provider has a key. A missing key wraps
// ErrMissingAPIKey.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%w: %s is required for the %s provider", ErrMissingAPIKey, c.KeyEnv(), c.Provider)
	}
	return nil
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
