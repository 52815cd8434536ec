package session

import (
	"context"
	"fmt"
	"os"

	"github.com/alphabetz/alphabetz/internal/questiongen"
)

// Begin validates the wizard selection and moves to PhaseLoading. The
// returned token must be passed to Loaded; it lets a late batch from an
// abandoned session be ignored.
func (c *Controller) Begin() (questiongen.Settings, int, error) {
	switch c.Phase {
	case PhaseLoading:
		return questiongen.Settings{}, 0, ErrFetchPending
	case PhaseSettings:
	default:
		return questiongen.Settings{}, 0, ErrWrongPhase
	}

	s, err := c.Wizard.Start()
	if err != nil {
		return questiongen.Settings{}, 0, err
	}

	c.settings = s
	c.sessionID = newSessionID()
	c.fetchToken++
	c.Phase = PhaseLoading
	return s, c.fetchToken, nil
}

// Loaded installs a fetched batch and starts the question loop. The batch
// is resolved to exactly the requested count; a fetch error leaves a
// notice and the fallback questions take over. It returns false when the
// token is stale.
func (c *Controller) Loaded(token int, generated []questiongen.Question, fetchErr error) bool {
	if c.Phase != PhaseLoading || token != c.fetchToken {
		return false
	}

	if fetchErr != nil {
		generated = nil
		c.notice = fmt.Sprintf("Error: %v. Using fallback questions.", fetchErr)
	}
	c.fallbackUsed = len(generated) < c.settings.QuestionCount
	c.questions = questiongen.Resolve(generated, c.settings.QuestionCount, true)

	c.index = 0
	c.score = 0
	c.startedAt = c.now()
	c.Phase = PhaseInProgress
	c.resetQuestion()
	return true
}

func (c *Controller) resetQuestion() {
	c.answered = false
	c.timedOut = false
	c.lastCorrect = false
	c.lastAnswer = ""
	c.timeLeft = c.settings.TimerSecs
}

// Submit grades answer for the current question and freezes it. Blank
// answers are rejected with questiongen.ErrEmptyAnswer and leave the
// question open.
func (c *Controller) Submit(answer string) (bool, error) {
	q := c.Current()
	if q == nil {
		return false, ErrWrongPhase
	}
	if c.answered {
		return false, ErrAlreadyAnswered
	}
	if err := questiongen.ValidateAnswer(answer); err != nil {
		return false, err
	}

	correct := questiongen.CheckAnswer(answer, q)
	c.answered = true
	c.lastAnswer = answer
	c.lastCorrect = correct
	if correct {
		c.score++
	}
	return correct, nil
}

// Tick counts the timer down one second. It returns true when this tick
// exhausted the timer and froze the question; the caller should then call
// AutoAdvance after FeedbackDelay. Ticks are ignored without a timer,
// once the question is answered, or while the quit dialog is open.
func (c *Controller) Tick() bool {
	if c.Current() == nil || !c.HasTimer() || c.answered || c.quit != nil {
		return false
	}
	if c.timeLeft > 0 {
		c.timeLeft--
	}
	if c.timeLeft > 0 {
		return false
	}
	c.answered = true
	c.timedOut = true
	c.lastCorrect = false
	return true
}

// CanAdvance reports whether Next is enabled.
func (c *Controller) CanAdvance() bool {
	return c.Current() != nil && (c.answered || (c.HasTimer() && c.timeLeft == 0))
}

// Advance moves to the next question, or to PhaseResults after the last.
func (c *Controller) Advance() error {
	if c.Current() == nil {
		return ErrWrongPhase
	}
	if !c.CanAdvance() {
		return ErrNotAnswered
	}
	if c.index < len(c.questions)-1 {
		c.index++
		c.resetQuestion()
		return nil
	}
	c.finish(c.score, len(c.questions))
	return nil
}

// AutoAdvance advances after a timeout, but only if the learner is still
// on question index. A manual advance in the meantime wins.
func (c *Controller) AutoAdvance(index int) bool {
	if c.Current() == nil || c.index != index || c.quit != nil {
		return false
	}
	return c.Advance() == nil
}

// Quit opens the quit dialog with the current tally.
func (c *Controller) Quit() (*QuitConfirmation, error) {
	if c.Current() == nil {
		return nil, ErrWrongPhase
	}
	attempted := c.index
	if c.answered {
		attempted++
	}
	c.quit = &QuitConfirmation{
		Score:     c.score,
		Attempted: attempted,
		Planned:   c.settings.QuestionCount,
	}
	return c.quit, nil
}

// CancelQuit closes the quit dialog and resumes the session.
func (c *Controller) CancelQuit() {
	c.quit = nil
}

// ConfirmQuit ends the session with the tally shown in the dialog.
func (c *Controller) ConfirmQuit() (*Result, error) {
	if c.quit == nil {
		return nil, ErrWrongPhase
	}
	q := c.quit
	c.finish(q.Score, q.Attempted)
	return c.result, nil
}

func (c *Controller) finish(score, total int) {
	c.quit = nil
	c.result = newResult(score, total, c.settings.QuestionCount, c.now().Sub(c.startedAt))
	c.Phase = PhaseResults
	c.record()
}

// Restart returns to the first wizard step with the default selections.
func (c *Controller) Restart() {
	c.Phase = PhaseSettings
	c.Wizard = NewWizardWith(c.defaults)
	c.settings = questiongen.Settings{}
	c.questions = nil
	c.index = 0
	c.score = 0
	c.quit = nil
	c.result = nil
	c.notice = ""
	c.fallbackUsed = false
	c.sessionID = ""
	c.fetchToken++
	c.resetQuestion()
}

func (c *Controller) record() {
	if c.recorder == nil || c.result == nil {
		return
	}
	data := sessionData(c.sessionID, c.settings, c.result, c.fallbackUsed)
	if err := c.recorder.AppendPracticeSession(context.Background(), data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record practice session: %v\n", err)
	}
}
