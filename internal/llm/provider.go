// Package llm wraps the hosted language models behind one Provider
// interface that returns schema-constrained JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one structured generation request to a hosted model.
type Provider interface {
	// Generate returns the model output. When req.Schema is set the
	// returned Content is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model name.
	ModelID() string
}

// Request is a single-turn prompt plus an optional output contract.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// UserPrompt builds a request holding one user message.
func UserPrompt(text string, schema *Schema) Request {
	return Request{
		Messages: []Message{{Role: RoleUser, Content: text}},
		Schema:   schema,
	}
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema document.
//
// Definition may describe an object or an array; providers that only accept
// object roots (OpenAI strict mode, Anthropic output formats) wrap array
// roots in an object under the "items" key and unwrap the response.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// IsArray reports whether the schema root is an array.
func (s *Schema) IsArray() bool {
	if s == nil {
		return false
	}
	t, _ := s.Definition["type"].(string)
	return t == "array"
}

// objectRoot returns a definition with an object root suitable for
// providers that reject array roots.
func (s *Schema) objectRoot() map[string]any {
	if !s.IsArray() {
		return s.Definition
	}
	return map[string]any{
		"type":                 "object",
		"properties":           map[string]any{wrappedArrayKey: s.Definition},
		"required":             []string{wrappedArrayKey},
		"additionalProperties": false,
	}
}

const wrappedArrayKey = "items"

// unwrapArray undoes objectRoot on a response body.
func unwrapArray(raw json.RawMessage) (json.RawMessage, error) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}
	inner, ok := wrapper[wrappedArrayKey]
	if !ok {
		return json.RawMessage("[]"), nil
	}
	return inner, nil
}

// Response is the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
