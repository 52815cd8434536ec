package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alphabetz/alphabetz/internal/questiongen"
	"github.com/alphabetz/alphabetz/internal/store"
)

// Phase is the controller's current phase.
type Phase int

const (
	PhaseSettings   Phase = iota // wizard
	PhaseLoading                 // waiting for the question batch
	PhaseInProgress              // question loop
	PhaseResults                 // terminal score display
)

func (p Phase) String() string {
	switch p {
	case PhaseSettings:
		return "settings"
	case PhaseLoading:
		return "loading"
	case PhaseInProgress:
		return "inProgress"
	case PhaseResults:
		return "results"
	}
	return "unknown"
}

// FeedbackDelay is how long feedback stays visible after a timeout before
// the session advances on its own.
const FeedbackDelay = 1500 * time.Millisecond

var (
	ErrWrongPhase      = errors.New("action not allowed in the current phase")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrNotAnswered     = errors.New("answer the question before moving on")
	ErrFetchPending    = errors.New("a question batch is already being fetched")
)

// Recorder persists finished sessions. store.EventRepo satisfies it.
type Recorder interface {
	AppendPracticeSession(ctx context.Context, data store.PracticeSessionData) error
}

// Controller owns all practice state: the settings wizard, the question
// loop and the results. Rendering code reads it and calls its methods; it
// never mutates fields directly.
type Controller struct {
	Phase  Phase
	Wizard *Wizard

	settings  questiongen.Settings
	questions []questiongen.Question
	index     int
	score     int

	answered    bool
	timedOut    bool
	lastCorrect bool
	lastAnswer  string
	timeLeft    int

	fetchToken   int
	notice       string
	fallbackUsed bool

	quit   *QuitConfirmation
	result *Result

	sessionID string
	startedAt time.Time

	defaults questiongen.Settings
	recorder Recorder
	now      func() time.Time
}

// QuitConfirmation is the tally shown in the "end session early" dialog.
type QuitConfirmation struct {
	Score     int
	Attempted int
	Planned   int
}

// New creates a controller in the settings phase. recorder may be nil.
func New(recorder Recorder) *Controller {
	return NewWithDefaults(questiongen.DefaultSettings(), recorder)
}

// NewWithDefaults is New with custom starting wizard selections.
func NewWithDefaults(defaults questiongen.Settings, recorder Recorder) *Controller {
	return &Controller{
		Phase:    PhaseSettings,
		Wizard:   NewWizardWith(defaults),
		defaults: defaults.Clone(),
		recorder: recorder,
		now:      time.Now,
	}
}

func (c *Controller) Settings() questiongen.Settings { return c.settings }
func (c *Controller) SessionID() string              { return c.sessionID }
func (c *Controller) Questions() []questiongen.Question {
	return c.questions
}

// Index is the zero-based position of the current question.
func (c *Controller) Index() int { return c.index }

func (c *Controller) Score() int { return c.score }

// Answered reports whether the current question is frozen.
func (c *Controller) Answered() bool { return c.answered }

// TimedOut reports whether the current question was frozen by its timer.
func (c *Controller) TimedOut() bool { return c.timedOut }

// LastCorrect reports whether the current question was answered correctly.
func (c *Controller) LastCorrect() bool { return c.lastCorrect }

// LastAnswer is the answer submitted for the current question.
func (c *Controller) LastAnswer() string { return c.lastAnswer }

// HasTimer reports whether questions are timed.
func (c *Controller) HasTimer() bool { return c.settings.TimerSecs > 0 }

// TimeLeft is the remaining seconds on the current question.
func (c *Controller) TimeLeft() int { return c.timeLeft }

// Notice is a fetch error to show alongside the fallback questions.
func (c *Controller) Notice() string { return c.notice }

// FallbackUsed reports whether any local fallback question was used.
func (c *Controller) FallbackUsed() bool { return c.fallbackUsed }

// PendingQuit is the open quit dialog, or nil.
func (c *Controller) PendingQuit() *QuitConfirmation { return c.quit }

// Result is set once the phase is PhaseResults.
func (c *Controller) Result() *Result { return c.result }

// Current returns the current question, or nil outside the question loop.
func (c *Controller) Current() questiongen.Question {
	if c.Phase != PhaseInProgress || c.index >= len(c.questions) {
		return nil
	}
	return c.questions[c.index]
}

// IsLast reports whether the current question is the final one.
func (c *Controller) IsLast() bool { return c.index == len(c.questions)-1 }

func newSessionID() string { return uuid.NewString() }
