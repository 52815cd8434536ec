package session

import (
	"errors"
	"slices"

	"github.com/alphabetz/alphabetz/internal/questiongen"
)

// Wizard steps.
const (
	StepIntro      = 1 // welcome text
	StepTenseForms = 2 // tense categories + sentence forms
	StepVoiceTypes = 3 // voices + question types
	StepCountTimer = 4 // question count + timer
	TotalSteps     = 4
)

// IncompleteSettingsMessage is shown when Start is pressed with an empty
// selection.
const IncompleteSettingsMessage = "To start practicing, please make at least one selection in each major category: Tense, Form, Voice, and Question Type."

// ErrIncompleteSettings is returned by Wizard.Start.
var ErrIncompleteSettings = errors.New(IncompleteSettingsMessage)

// Wizard collects practice settings over four steps.
type Wizard struct {
	Step     int
	Settings questiongen.Settings
}

func NewWizard() *Wizard {
	return &Wizard{Step: StepIntro, Settings: questiongen.DefaultSettings()}
}

// NewWizardWith starts from the given defaults instead of the built-in ones.
func NewWizardWith(defaults questiongen.Settings) *Wizard {
	return &Wizard{Step: StepIntro, Settings: defaults.Clone()}
}

// CanAdvance reports whether Next (or Start, on the last step) is enabled.
func (w *Wizard) CanAdvance() bool {
	s := w.Settings
	switch w.Step {
	case StepTenseForms:
		return len(s.TenseCategories) > 0 && len(s.Forms) > 0
	case StepVoiceTypes:
		return len(s.Voices) > 0 && len(s.QuestionTypes) > 0
	}
	return true
}

// Next moves forward one step. It returns false on the last step or when
// the current step is incomplete.
func (w *Wizard) Next() bool {
	if w.Step >= TotalSteps || !w.CanAdvance() {
		return false
	}
	w.Step++
	return true
}

// Back moves back one step. It returns false on the first step.
func (w *Wizard) Back() bool {
	if w.Step <= StepIntro {
		return false
	}
	w.Step--
	return true
}

func (w *Wizard) ToggleTense(category string) {
	w.Settings.TenseCategories = toggle(w.Settings.TenseCategories, category)
}

func (w *Wizard) ToggleForm(form string) {
	w.Settings.Forms = toggle(w.Settings.Forms, form)
}

func (w *Wizard) ToggleVoice(voice string) {
	w.Settings.Voices = toggle(w.Settings.Voices, voice)
}

func (w *Wizard) ToggleQuestionType(t questiongen.Type) {
	w.Settings.QuestionTypes = toggle(w.Settings.QuestionTypes, string(t))
}

func (w *Wizard) SetQuestionCount(n int) {
	w.Settings.QuestionCount = n
}

// SetTimer sets the per-question limit in seconds; 0 disables the timer.
func (w *Wizard) SetTimer(secs int) {
	w.Settings.TimerSecs = secs
}

// Start validates the selection and returns a copy of the settings.
func (w *Wizard) Start() (questiongen.Settings, error) {
	s := w.Settings
	if len(s.TenseCategories) == 0 || len(s.Forms) == 0 || len(s.Voices) == 0 || len(s.QuestionTypes) == 0 {
		return questiongen.Settings{}, ErrIncompleteSettings
	}
	if err := s.Validate(); err != nil {
		return questiongen.Settings{}, err
	}
	return s.Clone(), nil
}

func toggle(list []string, v string) []string {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(slices.Clone(list), i, i+1)
	}
	return append(slices.Clone(list), v)
}
