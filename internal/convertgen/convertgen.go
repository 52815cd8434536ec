// Package convertgen formats single-sentence tense conversion requests and
// validates their results.
package convertgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alphabetz/alphabetz/internal/llm"
)

var (
	// ErrMissingParameters is returned when a request field is blank.
	ErrMissingParameters = errors.New("missing required parameters for single conversion")

	// ErrIncompleteResult is returned when a nominally successful response
	// lacks one of the three result fields.
	ErrIncompleteResult = errors.New("AI generated incomplete data structure")
)

// Request asks for SourceSentence rewritten in a tense, voice and form.
type Request struct {
	SourceSentence   string `json:"sourceSentence"`
	TargetTenseTitle string `json:"targetTenseTitle"`
	TargetVoice      string `json:"targetVoice"`
	TargetForm       string `json:"targetForm"`
}

// Validate reports ErrMissingParameters when any field is blank.
func (r Request) Validate() error {
	fields := []struct{ name, value string }{
		{"sourceSentence", r.SourceSentence},
		{"targetTenseTitle", r.TargetTenseTitle},
		{"targetVoice", r.TargetVoice},
		{"targetForm", r.TargetForm},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingParameters, f.name)
		}
	}
	return nil
}

// Result is one conversion.
type Result struct {
	ConvertedSentence string `json:"convertedSentence"`
	Structure         string `json:"structure"`
	Explanation       string `json:"explanation"`
}

// Validate reports ErrIncompleteResult when any field is blank.
func (r Result) Validate() error {
	if strings.TrimSpace(r.ConvertedSentence) == "" ||
		strings.TrimSpace(r.Structure) == "" ||
		strings.TrimSpace(r.Explanation) == "" {
		return ErrIncompleteResult
	}
	return nil
}

// Converter converts one sentence.
type Converter interface {
	Convert(ctx context.Context, req Request) (*Result, error)
}

// LLMConverter implements Converter using an LLM provider.
type LLMConverter struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

func New(provider llm.Provider) *LLMConverter {
	return &LLMConverter{provider: provider, maxTokens: 2048, temperature: 0.2}
}

func (c *LLMConverter) Convert(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeConversion)

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildPrompt(req)},
		},
		Schema:      ConversionSchema,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		// A result object with a field missing fails the schema before it
		// reaches ParseResult; report it the same way.
		var inv *llm.ErrInvalidResponse
		if errors.As(err, &inv) && incomplete(inv.Content) {
			return nil, fmt.Errorf("%w: %w", ErrIncompleteResult, err)
		}
		return nil, fmt.Errorf("conversion failed: %w", err)
	}
	return ParseResult(resp.Content)
}

// incomplete reports whether raw decodes as a result lacking a field.
func incomplete(raw []byte) bool {
	if len(raw) == 0 {
		return false
	}
	_, err := ParseResult(raw)
	return errors.Is(err, ErrIncompleteResult)
}

// ParseResult decodes and validates a conversion result.
func ParseResult(raw []byte) (*Result, error) {
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode conversion result: %w", err)
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return &res, nil
}
