package questiongen

import (
	"context"
	"fmt"
	"os"

	"github.com/alphabetz/alphabetz/internal/llm"
)

// Generator produces a batch of practice questions.
type Generator interface {
	// Generate returns the valid questions from one model call. The result
	// may be shorter or longer than s.QuestionCount; Resolve fixes the size.
	Generate(ctx context.Context, s Settings) ([]Question, error)
}

// Config controls the behavior of the LLMGenerator.
type Config struct {
	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   16384,
		Temperature: 0.8,
	}
}

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

func (g *LLMGenerator) Generate(ctx context.Context, s Settings) ([]Question, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestions)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildPrompt(s)},
		},
		Schema:      QuestionBatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	qs, dropped, err := ParseBatch(resp.Content)
	if err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	if len(dropped) > 0 {
		fmt.Fprintf(os.Stderr, "warning: dropped %d malformed question(s): %v\n", len(dropped), dropped[0])
	}
	return qs, nil
}
