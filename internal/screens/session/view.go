package session

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/alphabetz/alphabetz/internal/questiongen"
	sess "github.com/alphabetz/alphabetz/internal/session"
	"github.com/alphabetz/alphabetz/internal/ui/components"
	"github.com/alphabetz/alphabetz/internal/ui/theme"
)

const introText = "Welcome to the Alphabetz Practice Zone! This structured section is designed to help you master English tenses through focused, randomized drills. " +
	"You can fully customize your session in the upcoming steps to target specific grammatical areas. " +
	"The practice features three types of questions: Sentence Conversion, Fill-in-the-Blank, and Tense Recognition. " +
	"Press Enter to begin selecting your focus areas."

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *SessionScreen) View(width, height int) string {
	switch s.ctrl.Phase {
	case sess.PhaseSettings:
		return s.renderWizard(width, height)
	case sess.PhaseLoading:
		return s.renderLoading(width, height)
	case sess.PhaseResults:
		return s.results.View(width, height)
	}
	if q := s.ctrl.PendingQuit(); q != nil {
		return renderQuitConfirm(q, width, height)
	}
	return s.renderQuestion(width, height)
}

func (s *SessionScreen) renderWizard(width, height int) string {
	w := s.ctrl.Wizard
	cw := components.ContentWidth(width)

	var body string
	switch w.Step {
	case sess.StepIntro:
		body = theme.Title.Width(cw).Render("Practice") + "\n\n" +
			lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(introText)
	case sess.StepTenseForms:
		st := w.Settings
		body = s.renderLists(
			func(v string) bool { return slices.Contains(st.TenseCategories, v) },
			func(v string) bool { return slices.Contains(st.Forms, v) })
	case sess.StepVoiceTypes:
		st := w.Settings
		body = s.renderLists(
			func(v string) bool { return slices.Contains(st.Voices, v) },
			func(v string) bool { return slices.Contains(st.QuestionTypes, v) })
	case sess.StepCountTimer:
		st := w.Settings
		body = s.renderLists(
			func(v string) bool { return v == strconv.Itoa(st.QuestionCount) },
			func(v string) bool { return v == strconv.Itoa(st.TimerSecs) })
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")
	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Error).Render(s.errMsg))
		b.WriteString("\n\n")
	}

	next := "Next"
	if w.Step == sess.TotalSteps {
		next = "Start Practice"
	}
	nav := components.StepIndicator(w.Step, sess.TotalSteps) + "    " +
		components.Button(next, w.CanAdvance(), len(next)+6)
	b.WriteString(nav)

	return components.CabinetFrame(b.String(), width, height)
}

func (s *SessionScreen) renderLists(left, right func(string) bool) string {
	a := s.lists[0].View(left, s.focus == 0)
	c := s.lists[1].View(right, s.focus == 1)
	return lipgloss.JoinHorizontal(lipgloss.Top, a, "      ", c)
}

func (s *SessionScreen) renderLoading(width, height int) string {
	frame := spinnerFrames[s.spinner%len(spinnerFrames)]
	msg := fmt.Sprintf("%s Generating %d custom questions...", frame, s.ctrl.Settings().QuestionCount)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(msg))
}

func (s *SessionScreen) renderQuestion(width, height int) string {
	q := s.ctrl.Current()
	if q == nil {
		return ""
	}
	cw := components.ContentWidth(width)
	total := len(s.ctrl.Questions())

	var b strings.Builder
	if n := s.ctrl.Notice(); n != "" {
		b.WriteString(theme.Warning.Width(cw).Render(n))
		b.WriteString("\n\n")
	}

	status := fmt.Sprintf("Question %d of %d   Score: %d", s.ctrl.Index()+1, total, s.ctrl.Score())
	if s.ctrl.HasTimer() {
		timer := fmt.Sprintf("   ⏱ %ds", s.ctrl.TimeLeft())
		style := lipgloss.NewStyle().Foreground(theme.Accent)
		if s.ctrl.TimeLeft() <= 5 {
			style = theme.Incorrect
		}
		status += style.Render(timer)
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(status))
	b.WriteString("\n")
	b.WriteString(components.Fraction("", s.ctrl.Index(), total, cw).View())
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render(q.Type().Label()))
	b.WriteString("\n\n")
	b.WriteString(s.renderPrompt(q, cw))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
		b.WriteString("\n\n")
	}
	if s.ctrl.Answered() {
		b.WriteString(s.renderFeedback(q, cw))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, "\n"+b.String())
}

func (s *SessionScreen) renderPrompt(q questiongen.Question, cw int) string {
	text := lipgloss.NewStyle().Width(cw).Foreground(theme.Text)
	strong := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	switch q := q.(type) {
	case questiongen.Conversion:
		return text.Render("Convert this sentence to: "+strong.Render(fmt.Sprintf("%s (%s Voice)", q.TargetTense, q.TargetVoice))) +
			"\n\n" + components.Card(q.SourceSentence, cw) +
			"\n\n" + s.input.View()
	case questiongen.FillInBlank:
		before, after := q.Parts()
		return text.Render("Conjugate the verb "+strong.Render("("+q.VerbHint()+")")+" in the correct tense:") +
			"\n\n" + before + " " + s.input.View() + " " + after
	case questiongen.MultipleChoice:
		return text.Render("Which tense is used in the sentence below?") +
			"\n\n" + components.Card(lipgloss.NewStyle().Italic(true).Render(q.Sentence), cw) +
			"\n\n" + s.mc.View(q.CorrectAnswer, s.ctrl.Answered())
	}
	return ""
}

func (s *SessionScreen) renderFeedback(q questiongen.Question, cw int) string {
	var b strings.Builder
	switch {
	case s.ctrl.TimedOut():
		b.WriteString(theme.Incorrect.Render("Time's up!"))
	case s.ctrl.LastCorrect():
		b.WriteString(theme.Correct.Render("Correct!"))
	default:
		b.WriteString(theme.Incorrect.Render("Incorrect."))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(q.Explain()))
	if !s.ctrl.LastCorrect() {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).
			Render(fmt.Sprintf("Correct Answer: %q", q.Answer())))
	}
	return b.String()
}

func renderQuitConfirm(q *sess.QuitConfirmation, width, height int) string {
	cw := min(components.ContentWidth(width), 56)
	body := theme.Incorrect.Render("End Practice Session?") + "\n\n" +
		lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(q.Message()) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] End Session") + "    " +
		lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] Continue Practice")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(body, cw+6))
}
