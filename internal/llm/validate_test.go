package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func conversionTestSchema() *Schema {
	return &Schema{
		Name: "test-conversion",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"convertedSentence": map[string]any{"type": "string"},
				"structure":         map[string]any{"type": "string"},
				"explanation":       map[string]any{"type": "string"},
			},
			"required": []string{"convertedSentence", "structure", "explanation"},
		},
	}
}

func arrayTestSchema() *Schema {
	return &Schema{
		Name: "test-array",
		Definition: map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":       "object",
				"properties": map[string]any{"id": map[string]any{"type": "integer"}},
				"required":   []string{"id"},
			},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		raw     string
		wantErr bool
	}{
		{"nil schema accepts anything", nil, `not json`, false},
		{"complete object", conversionTestSchema(), `{"convertedSentence":"a","structure":"b","explanation":"c"}`, false},
		{"missing structure", conversionTestSchema(), `{"convertedSentence":"a","explanation":"c"}`, true},
		{"wrong type", conversionTestSchema(), `{"convertedSentence":1,"structure":"b","explanation":"c"}`, true},
		{"invalid JSON", conversionTestSchema(), `{"convertedSentence":`, true},
		{"array ok", arrayTestSchema(), `[{"id":1},{"id":2}]`, false},
		{"empty array ok", arrayTestSchema(), `[]`, false},
		{"array item missing id", arrayTestSchema(), `[{"id":1},{}]`, true},
		{"object where array expected", arrayTestSchema(), `{"id":1}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.schema, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
				if string(inv.Content) != tt.raw {
					t.Fatalf("error content = %s, want %s", inv.Content, tt.raw)
				}
			}
		})
	}
}

func TestValidate_CachesCompiledSchema(t *testing.T) {
	s := conversionTestSchema()
	raw := json.RawMessage(`{"convertedSentence":"a","structure":"b","explanation":"c"}`)
	for i := 0; i < 3; i++ {
		if err := Validate(s, raw); err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
	}
	if _, ok := schemaCache.Load(s.Name); !ok {
		t.Fatal("expected compiled schema to be cached")
	}
}

func TestUnwrapArray(t *testing.T) {
	got, err := unwrapArray(json.RawMessage(`{"items":[1,2]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `[1,2]` {
		t.Fatalf("got %s", got)
	}

	got, err = unwrapArray(json.RawMessage(`{}`))
	if err != nil || string(got) != `[]` {
		t.Fatalf("missing key should yield empty array, got %s, %v", got, err)
	}

	if _, err := unwrapArray(json.RawMessage(`[1]`)); err == nil {
		t.Fatal("expected error for non-object")
	}
}
