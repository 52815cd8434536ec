package questiongen

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alphabetz/alphabetz/internal/tenses"
)

// ErrInvalidSettings is returned when practice settings cannot produce a
// question batch.
var ErrInvalidSettings = errors.New("invalid practice settings")

// Settings is one practice configuration chosen in the wizard.
type Settings struct {
	TenseCategories []string `json:"tenseCategories"`
	Forms           []string `json:"forms"`
	Voices          []string `json:"voices"`
	QuestionTypes   []string `json:"questionTypes"`
	QuestionCount   int      `json:"questionCount"`

	// TimerSecs is the per-question limit. Zero means no timer. It only
	// matters to the session and is not sent to the gateway.
	TimerSecs int `json:"-"`
}

// Choices offered by the settings wizard.
var (
	QuestionCounts = []int{5, 10, 20, 30}
	TimerChoices   = []int{0, 15, 30, 60}
	VoiceChoices   = []string{"Active", "Passive"}
	FormChoices    = []string{
		string(tenses.FormAffirmative),
		string(tenses.FormNegative),
		string(tenses.FormInterrogative),
	}
)

// DefaultSettings is the wizard's starting selection.
func DefaultSettings() Settings {
	return Settings{
		TenseCategories: []string{"present"},
		Forms:           []string{string(tenses.FormAffirmative)},
		Voices:          []string{"Active"},
		QuestionTypes:   []string{string(TypeConversion)},
		QuestionCount:   10,
	}
}

// Validate checks that all four selection sets are non-empty and the count
// is positive. Errors wrap ErrInvalidSettings.
func (s Settings) Validate() error {
	switch {
	case len(s.TenseCategories) == 0:
		return fmt.Errorf("%w: no tense categories selected", ErrInvalidSettings)
	case len(s.Forms) == 0:
		return fmt.Errorf("%w: no sentence forms selected", ErrInvalidSettings)
	case len(s.Voices) == 0:
		return fmt.Errorf("%w: no voices selected", ErrInvalidSettings)
	case len(s.QuestionTypes) == 0:
		return fmt.Errorf("%w: no question types selected", ErrInvalidSettings)
	case s.QuestionCount <= 0:
		return fmt.Errorf("%w: question count must be positive, got %d", ErrInvalidSettings, s.QuestionCount)
	case s.TimerSecs < 0:
		return fmt.Errorf("%w: negative timer", ErrInvalidSettings)
	}
	for _, t := range s.QuestionTypes {
		if !slices.Contains(Types(), Type(t)) {
			return fmt.Errorf("%w: unknown question type %q", ErrInvalidSettings, t)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	s.TenseCategories = slices.Clone(s.TenseCategories)
	s.Forms = slices.Clone(s.Forms)
	s.Voices = slices.Clone(s.Voices)
	s.QuestionTypes = slices.Clone(s.QuestionTypes)
	return s
}
