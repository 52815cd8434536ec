// Package converter drives the four-step tense converter wizard.
package converter

import (
	"errors"
	"strings"

	"github.com/alphabetz/alphabetz/internal/convertgen"
	"github.com/alphabetz/alphabetz/internal/tenses"
)

// Wizard steps.
const (
	StepIntro     = 1
	StepTense     = 2 // time + aspect
	StepVoiceForm = 3
	StepSentence  = 4
	TotalSteps    = 4
)

type Phase int

const (
	PhaseSettings Phase = iota
	PhaseLoading
	PhaseResult
)

// Choices offered by the wizard.
var (
	AspectChoices = []string{"simple", "continuous", "perfect", "perfect continuous"}
	VoiceChoices  = []string{"Active Voice", "Passive Voice"}
	FormChoices   = []string{
		string(tenses.FormAffirmative),
		string(tenses.FormNegative),
		string(tenses.FormInterrogative),
	}
)

// IncompleteMessage is shown when a conversion is requested with a blank
// selection.
const IncompleteMessage = "Please complete all required selections."

var ErrIncomplete = errors.New(IncompleteMessage)

// IncompleteDataMessage is shown when the model omits a result field.
const IncompleteDataMessage = "Received incomplete data from the AI."

// FailedMessage is shown for a failure that carries no text of its own.
const FailedMessage = "Failed to generate conversion. Please try again."

func errorMessage(err error) string {
	switch {
	case errors.Is(err, convertgen.ErrIncompleteResult):
		return IncompleteDataMessage
	case errors.Is(err, convertgen.ErrMissingParameters):
		return IncompleteMessage
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FailedMessage
}

// Input is the wizard's selection.
type Input struct {
	Time     string
	Aspect   string
	Voice    string
	Form     string
	Sentence string
}

// Controller owns the converter wizard state.
type Controller struct {
	Step  int
	Phase Phase
	Input Input

	err    string
	req    convertgen.Request
	result *convertgen.Result
	token  int
}

func New() *Controller {
	return &Controller{Step: StepIntro, Phase: PhaseSettings}
}

func (c *Controller) Error() string              { return c.err }
func (c *Controller) Result() *convertgen.Result { return c.result }

// Request is the request that produced Result.
func (c *Controller) Request() convertgen.Request { return c.req }

// TenseID is e.g. "past-perfect-continuous", or "" until time and aspect
// are chosen.
func (c *Controller) TenseID() string {
	return tenses.ID(c.Input.Time, c.Input.Aspect)
}

// TenseTitle is the display title of the selected tense.
func (c *Controller) TenseTitle() string {
	return tenses.Title(c.TenseID())
}

// CanAdvance reports whether Next (or Convert, on the last step) is
// enabled.
func (c *Controller) CanAdvance() bool {
	switch c.Step {
	case StepTense:
		return c.Input.Time != "" && c.Input.Aspect != ""
	case StepVoiceForm:
		return c.Input.Voice != "" && c.Input.Form != ""
	case StepSentence:
		return strings.TrimSpace(c.Input.Sentence) != ""
	}
	return true
}

func (c *Controller) Next() bool {
	if c.Phase != PhaseSettings || c.Step >= TotalSteps || !c.CanAdvance() {
		return false
	}
	c.Step++
	return true
}

func (c *Controller) Back() bool {
	if c.Phase != PhaseSettings || c.Step <= StepIntro {
		return false
	}
	c.Step--
	return true
}

// Begin validates the selection and moves to PhaseLoading. The token must
// be passed to Finish.
func (c *Controller) Begin() (convertgen.Request, int, error) {
	if c.Phase != PhaseSettings {
		return convertgen.Request{}, 0, errors.New("a conversion is already running")
	}
	c.err = ""

	title := c.TenseTitle()
	if strings.TrimSpace(c.Input.Sentence) == "" || c.TenseID() == "" || c.Input.Voice == "" || c.Input.Form == "" {
		c.err = IncompleteMessage
		return convertgen.Request{}, 0, ErrIncomplete
	}

	req := convertgen.Request{
		SourceSentence:   strings.TrimSpace(c.Input.Sentence),
		TargetTenseTitle: title,
		TargetVoice:      c.Input.Voice,
		TargetForm:       c.Input.Form,
	}
	c.req = req
	c.token++
	c.Phase = PhaseLoading
	return req, c.token, nil
}

// Finish installs the outcome of the request started by Begin. A failure
// returns to the settings phase with the error shown; it returns false for
// a stale token.
func (c *Controller) Finish(token int, res *convertgen.Result, err error) bool {
	if c.Phase != PhaseLoading || token != c.token {
		return false
	}
	if err != nil {
		c.err = errorMessage(err)
		c.Phase = PhaseSettings
		return true
	}
	c.result = res
	c.Phase = PhaseResult
	return true
}

// Reset clears every field and returns to the first step.
func (c *Controller) Reset() {
	token := c.token + 1
	*c = *New()
	c.token = token
}
