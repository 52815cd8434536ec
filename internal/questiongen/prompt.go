package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a professional English grammar instructor creating tense practice questions.

Rules:
- Return a JSON array matching the provided schema. No extra fields.
- Distribute question types evenly across the selected ones.
- Difficulty: Intermediate.
- IDs are sequential integers starting from 1.
- 'conversion': provide sourceSentence, targetTense, targetVoice, correctAnswer (the full converted sentence) and explanation.
- 'fill-in-the-blank': provide sentenceTemplate with the base verb in parentheses (e.g. 'She ___ (go) to school.'), correctAnswer (the conjugated verb only) and explanation.
- 'multiple-choice': provide sentence (the full sentence to analyze), options (exactly 4 tense names), correctAnswer (the exact matching option text) and explanation.
- Questions must be varied, grammatically correct and educational.`

// BuildPrompt formats the user message for one batch request.
func BuildPrompt(s Settings) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate exactly %d unique practice questions.\n", s.QuestionCount)
	b.WriteString("\nConstraints:\n")
	fmt.Fprintf(&b, "- Tense Categories: %s\n", strings.Join(s.TenseCategories, ", "))
	fmt.Fprintf(&b, "- Sentence Forms: %s\n", strings.Join(s.Forms, ", "))
	fmt.Fprintf(&b, "- Voices: %s\n", strings.Join(s.Voices, ", "))
	fmt.Fprintf(&b, "- Question Types: %s", strings.Join(s.QuestionTypes, ", "))

	return b.String()
}
