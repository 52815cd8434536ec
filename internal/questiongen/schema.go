package questiongen

import "github.com/alphabetz/alphabetz/internal/llm"

// QuestionBatchSchema is the output contract for a batch of practice
// questions.
var QuestionBatchSchema = &llm.Schema{
	Name:        "practice-questions",
	Description: "A batch of English tense practice questions",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id": map[string]any{
					"type":        "integer",
					"description": "A unique question ID.",
				},
				"type": map[string]any{
					"type":        "string",
					"enum":        []any{"conversion", "fill-in-the-blank", "multiple-choice"},
					"description": "The type of practice question.",
				},
				"sourceSentence": map[string]any{
					"type":        "string",
					"description": "The source sentence for 'conversion' type.",
				},
				"targetTense": map[string]any{
					"type":        "string",
					"description": "Target tense name (e.g., 'Past Continuous') for 'conversion' type.",
				},
				"targetVoice": map[string]any{
					"type":        "string",
					"description": "Target voice name ('Active' or 'Passive') for 'conversion' type.",
				},
				"sentenceTemplate": map[string]any{
					"type":        "string",
					"description": "The sentence with verb in parenthesis, e.g., 'They ___ (live)' for 'fill-in-the-blank' type.",
				},
				"sentence": map[string]any{
					"type":        "string",
					"description": "The sentence to identify the tense for 'multiple-choice' type.",
				},
				"options": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Exactly 4 multiple choice options for 'multiple-choice' type.",
				},
				"correctAnswer": map[string]any{
					"type":        "string",
					"description": "The exact correct answer (converted sentence, conjugated verb, or correct option text).",
				},
				"explanation": map[string]any{
					"type":        "string",
					"description": "A detailed explanation for the correct answer, used for feedback.",
				},
			},
			"required": []any{"id", "type", "correctAnswer", "explanation"},
		},
	},
}
