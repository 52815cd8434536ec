package convertgen

import (
	"fmt"
	"strings"

	"github.com/alphabetz/alphabetz/internal/llm"
)

const systemPrompt = `You are a world-class English linguist and grammar specialist. Convert the provided source sentence into the specific target tense, voice, and form.

Your response MUST be a JSON object that strictly adheres to the provided schema.

1. Provide the complete converted sentence.
2. Generate the grammatical structure/formula (e.g., 'Subject + had + Past Participle') and include it in the 'structure' field.
3. Write a clear, concise (2-4 sentences) explanation in the 'explanation' field detailing the grammatical rules applied (e.g., changing the main verb, adding auxiliaries, subject/object inversion) to achieve the conversion.`

// BuildPrompt formats the user message for one conversion.
func BuildPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Source Sentence: %q\n\n", strings.TrimSpace(req.SourceSentence))
	fmt.Fprintf(&b, "Target Tense: %s\n", req.TargetTenseTitle)
	fmt.Fprintf(&b, "Target Voice: %s\n", req.TargetVoice)
	fmt.Fprintf(&b, "Target Form: %s", req.TargetForm)
	return b.String()
}

// ConversionSchema is the three-field output contract.
var ConversionSchema = &llm.Schema{
	Name:        "tense-conversion",
	Description: "The result of a single tense conversion, including the converted sentence and a detailed explanation of the grammatical changes made.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"convertedSentence": map[string]any{
				"type":        "string",
				"description": "The complete sentence, converted from the source sentence into the specific target tense, voice, and form.",
			},
			"structure": map[string]any{
				"type":        "string",
				"description": "The grammatical structure/formula used for this conversion, e.g., 'Subject + had + Past Participle'.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "A detailed, step-by-step explanation (2-4 sentences) of how the conversion was performed, including why the auxiliary verbs and main verb forms were chosen.",
			},
		},
		"required":             []any{"convertedSentence", "explanation", "structure"},
		"additionalProperties": false,
	},
}
