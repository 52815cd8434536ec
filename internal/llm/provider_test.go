package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, PurposeQuestions)
	if p := PurposeFrom(ctx); p != PurposeQuestions {
		t.Fatalf("expected %q, got %q", PurposeQuestions, p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ALPHABETZ_LLM_PROVIDER",
		"ALPHABETZ_GEMINI_API_KEY", "GEMINI_API_KEY",
		"ALPHABETZ_OPENAI_API_KEY", "OPENAI_API_KEY",
		"ALPHABETZ_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY",
		"ALPHABETZ_OPENROUTER_API_KEY", "OPENROUTER_API_KEY",
		"ALPHABETZ_GEMINI_MODEL",
	} {
		t.Setenv(name, "")
	}
}

func TestConfig_MissingKeyIsSentinel(t *testing.T) {
	err := Config{Provider: ProviderGemini}.Validate()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Fatalf("error should name the variable, got %q", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GEMINI_API_KEY", "vendor-key")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderGemini {
		t.Fatalf("provider = %q", cfg.Provider)
	}
	if cfg.Gemini.APIKey != "vendor-key" {
		t.Fatalf("gemini key = %q", cfg.Gemini.APIKey)
	}
	if cfg.Model() != DefaultGeminiModel {
		t.Fatalf("model = %q", cfg.Model())
	}

	t.Setenv("ALPHABETZ_GEMINI_API_KEY", "prefixed-key")
	t.Setenv("ALPHABETZ_GEMINI_MODEL", "gemini-2.5-pro")
	cfg = ConfigFromEnv()
	if cfg.Gemini.APIKey != "prefixed-key" || cfg.Model() != "gemini-2.5-pro" {
		t.Fatalf("prefixed vars not preferred: %+v", cfg.Gemini)
	}
}

func TestDiscoverConfig(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		want   string
		wantOK bool
	}{
		{"nothing set", nil, ProviderGemini, false},
		{"openai only", map[string]string{"OPENAI_API_KEY": "k"}, ProviderOpenAI, true},
		{"gemini wins", map[string]string{"OPENAI_API_KEY": "k", "GEMINI_API_KEY": "k"}, ProviderGemini, true},
		{"openrouter", map[string]string{"OPENROUTER_API_KEY": "k"}, ProviderOpenRouter, true},
		{"explicit provider", map[string]string{"ALPHABETZ_LLM_PROVIDER": "anthropic", "GEMINI_API_KEY": "k"}, ProviderAnthropic, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearKeyEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, ok := DiscoverConfig()
			if cfg.Provider != tt.want || ok != tt.wantOK {
				t.Fatalf("got (%q, %v), want (%q, %v)", cfg.Provider, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestKeyEnv(t *testing.T) {
	for provider, want := range map[string]string{
		ProviderGemini:     "GEMINI_API_KEY",
		ProviderOpenAI:     "OPENAI_API_KEY",
		ProviderAnthropic:  "ANTHROPIC_API_KEY",
		ProviderOpenRouter: "OPENROUTER_API_KEY",
	} {
		if got := (Config{Provider: provider}).KeyEnv(); got != want {
			t.Errorf("KeyEnv(%s) = %q, want %q", provider, got, want)
		}
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	clearKeyEnv(t)
	_, err := NewProvider(context.Background(), ConfigFromEnv(), nil)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if id := RequestIDFrom(ctx); id != "" {
		t.Fatalf("expected empty id, got %q", id)
	}
	ctx = WithRequestID(ctx, "req-42")
	if id := RequestIDFrom(ctx); id != "req-42" {
		t.Fatalf("expected req-42, got %q", id)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.5-flash")
	if c == nil {
		t.Fatal("expected pricing for gemini-2.5-flash")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-2.8) > 1e-9 {
		t.Fatalf("cost = %v, want 2.8", got)
	}
	if LookupCost("google/gemini-2.5-flash") == nil {
		t.Fatal("vendor-prefixed id should fall back to the bare model")
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}
