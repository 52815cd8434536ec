package questiongen

import (
	"errors"
	"strings"
)

// ErrEmptyAnswer is returned when a blank answer is submitted.
var ErrEmptyAnswer = errors.New("answer is empty")

// ValidateAnswer rejects answers that cannot be submitted.
func ValidateAnswer(answer string) error {
	if strings.TrimSpace(answer) == "" {
		return ErrEmptyAnswer
	}
	return nil
}

// CheckAnswer grades the learner's answer.
//
//   - multiple-choice: the selected option must equal the correct answer.
//   - fill-in-the-blank: trimmed, case-insensitive equality.
//   - conversion: the trimmed answer, lowercased, must be contained in the
//     lowercased correct answer. This is lenient on purpose.
func CheckAnswer(answer string, q Question) bool {
	if ValidateAnswer(answer) != nil {
		return false
	}
	switch q := q.(type) {
	case MultipleChoice:
		return answer == q.CorrectAnswer
	case FillInBlank:
		return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer))
	case Conversion:
		return strings.Contains(strings.ToLower(q.CorrectAnswer), strings.ToLower(strings.TrimSpace(answer)))
	}
	return false
}
