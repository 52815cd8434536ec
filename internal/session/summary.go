package session

import (
	"fmt"
	"math"
	"time"

	"github.com/alphabetz/alphabetz/internal/questiongen"
	"github.com/alphabetz/alphabetz/internal/store"
)

// PassPercentage is the score at or above which a session counts as passed.
const PassPercentage = 70

// Result is the final tally of one session.
type Result struct {
	Score int

	// Total is the number of questions the score is out of: every question
	// for a completed session, the attempted ones after an early quit.
	Total int

	// Planned is the question count chosen in the wizard.
	Planned int

	Duration time.Duration
}

func newResult(score, total, planned int, d time.Duration) *Result {
	return &Result{Score: score, Total: total, Planned: planned, Duration: d}
}

// Percentage is round(score/total*100), or 0 for an empty session.
func (r *Result) Percentage() int {
	if r.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(r.Score) / float64(r.Total) * 100))
}

func (r *Result) Passed() bool { return r.Percentage() >= PassPercentage }

// IsFullSession reports whether every planned question was counted.
func (r *Result) IsFullSession() bool { return r.Total == r.Planned }

func (r *Result) Headline() string {
	if r.IsFullSession() {
		return "Practice Completed!"
	}
	return "Session Ended Early"
}

// ScoreLine is e.g. "3 / 5 Correct (60%)".
func (r *Result) ScoreLine() string {
	return fmt.Sprintf("%d / %d Correct (%d%%)", r.Score, r.Total, r.Percentage())
}

func (r *Result) Message() string {
	switch {
	case !r.IsFullSession():
		return fmt.Sprintf("You answered %d questions out of %d planned. Review your progress before starting a new session.", r.Total, r.Planned)
	case r.Passed():
		return "Excellent work! You demonstrated mastery of the selected tenses."
	default:
		return "Keep practicing to solidify your knowledge in the areas you missed."
	}
}

// QuitMessage is the body of the quit dialog.
func (q *QuitConfirmation) Message() string {
	return fmt.Sprintf("Are you sure you want to end your session early? Your current score is %d out of %d questions attempted.", q.Score, q.Attempted)
}

func sessionData(id string, s questiongen.Settings, r *Result, fallback bool) store.PracticeSessionData {
	return store.PracticeSessionData{
		SessionID:       id,
		TenseCategories: s.TenseCategories,
		Forms:           s.Forms,
		Voices:          s.Voices,
		QuestionTypes:   s.QuestionTypes,
		Planned:         r.Planned,
		TimerSecs:       s.TimerSecs,
		Score:           r.Score,
		Attempted:       r.Total,
		FullSession:     r.IsFullSession(),
		FallbackUsed:    fallback,
		DurationSecs:    int(r.Duration.Seconds()),
	}
}
