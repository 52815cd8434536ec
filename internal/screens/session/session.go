package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/alphabetz/alphabetz/internal/questiongen"
	"github.com/alphabetz/alphabetz/internal/router"
	"github.com/alphabetz/alphabetz/internal/screen"
	"github.com/alphabetz/alphabetz/internal/screens/summary"
	sess "github.com/alphabetz/alphabetz/internal/session"
	"github.com/alphabetz/alphabetz/internal/tenses"
	"github.com/alphabetz/alphabetz/internal/ui/components"
	"github.com/alphabetz/alphabetz/internal/ui/layout"
)

// generateTimeout bounds one batch request.
const generateTimeout = 2 * time.Minute

var errNoGenerator = errors.New("no question generator configured")

// SessionScreen drives a practice session: the settings wizard, the
// question loop and the results.
type SessionScreen struct {
	ctrl      *sess.Controller
	generator questiongen.Generator

	// wizard
	lists [2]components.Checklist
	focus int

	input   components.TextInput
	mc      components.MultiChoice
	tickGen int
	spinner int
	errMsg  string

	results *summary.SummaryScreen
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New creates a SessionScreen. generator may be nil, in which case the
// fallback questions are used.
func New(generator questiongen.Generator, ctrl *sess.Controller) *SessionScreen {
	s := &SessionScreen{ctrl: ctrl, generator: generator}
	s.setupStep()
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	return nil
}

func (s *SessionScreen) Title() string {
	return "Practice"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch s.ctrl.Phase {
	case sess.PhaseSettings:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Next"}}
		if s.ctrl.Wizard.Step == sess.TotalSteps {
			hints[0].Description = "Start Practice"
		}
		if s.ctrl.Wizard.Step > sess.StepIntro {
			hints = append(hints,
				layout.KeyHint{Key: "Space", Description: "Toggle"},
				layout.KeyHint{Key: "Tab", Description: "Switch list"},
				layout.KeyHint{Key: "Backspace", Description: "Back"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
	case sess.PhaseLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case sess.PhaseResults:
		return s.results.KeyHints()
	}
	if s.ctrl.PendingQuit() != nil {
		return []layout.KeyHint{
			{Key: "Y", Description: "End Session"},
			{Key: "N", Description: "Continue Practice"},
		}
	}
	if s.ctrl.Answered() {
		next := "Next Question"
		if s.ctrl.IsLast() {
			next = "Finish"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: next},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case batchLoadedMsg:
		if s.ctrl.Loaded(msg.Token, msg.Questions, msg.Err) {
			return s, s.startQuestion()
		}
		return s, nil

	case timerTickMsg:
		return s.handleTick(msg)

	case autoAdvanceMsg:
		if s.ctrl.AutoAdvance(msg.Index) {
			return s, s.afterAdvance()
		}
		return s, nil

	case spinnerTickMsg:
		if s.ctrl.Phase != sess.PhaseLoading {
			return s, nil
		}
		s.spinner++
		return s, spinnerCmd()

	case summary.RestartMsg:
		s.ctrl.Restart()
		s.results = nil
		s.errMsg = ""
		s.setupStep()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward cursor blinks and the like to the text input.
	if s.ctrl.Phase == sess.PhaseInProgress && !s.ctrl.Answered() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.ctrl.Phase {
	case sess.PhaseSettings:
		return s.handleWizardKey(msg)
	case sess.PhaseLoading:
		if msg.String() == "esc" {
			s.ctrl.Restart()
			s.setupStep()
			return s, router.Pop
		}
		return s, nil
	case sess.PhaseResults:
		_, cmd := s.results.Update(msg)
		return s, cmd
	}
	return s.handleQuestionKey(msg)
}

// setupStep builds the checklists for the current wizard step.
func (s *SessionScreen) setupStep() {
	s.focus = 0
	switch s.ctrl.Wizard.Step {
	case sess.StepTenseForms:
		s.lists = [2]components.Checklist{
			components.NewChecklist("Tense Categories", tenses.Times()).
				WithLabels("Present", "Past", "Future"),
			components.NewChecklist("Sentence Forms", questiongen.FormChoices),
		}
	case sess.StepVoiceTypes:
		types := questiongen.Types()
		values := make([]string, len(types))
		labels := make([]string, len(types))
		for i, t := range types {
			values[i] = string(t)
			labels[i] = t.Label()
		}
		s.lists = [2]components.Checklist{
			components.NewChecklist("Voice Selection", questiongen.VoiceChoices),
			components.NewChecklist("Question Types", values).WithLabels(labels...),
		}
	case sess.StepCountTimer:
		counts := make([]string, len(questiongen.QuestionCounts))
		for i, n := range questiongen.QuestionCounts {
			counts[i] = strconv.Itoa(n)
		}
		timers := make([]string, len(questiongen.TimerChoices))
		timerLabels := make([]string, len(questiongen.TimerChoices))
		for i, n := range questiongen.TimerChoices {
			timers[i] = strconv.Itoa(n)
			timerLabels[i] = timerLabel(n)
		}
		s.lists = [2]components.Checklist{
			components.NewChecklist("Number of Questions", counts).AsRadio(),
			components.NewChecklist("Time Limit Per Question", timers).WithLabels(timerLabels...).AsRadio(),
		}
	default:
		s.lists = [2]components.Checklist{}
	}
}

func timerLabel(secs int) string {
	if secs == 0 {
		return "No Timer"
	}
	return strconv.Itoa(secs) + "s"
}

func (s *SessionScreen) handleWizardKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	w := s.ctrl.Wizard
	switch msg.String() {
	case "esc":
		return s, router.Pop
	case "backspace", "left", "h":
		if w.Back() {
			s.errMsg = ""
			s.setupStep()
		}
		return s, nil
	case "tab", "shift+tab":
		if w.Step > sess.StepIntro {
			s.focus = 1 - s.focus
		}
		return s, nil
	case "up", "k":
		s.lists[s.focus].Move(-1)
		return s, nil
	case "down", "j":
		s.lists[s.focus].Move(1)
		return s, nil
	case "space", " ", "x":
		s.toggleCurrent()
		return s, nil
	case "enter", "right", "l":
		if w.Step < sess.TotalSteps {
			if w.Next() {
				s.errMsg = ""
				s.setupStep()
			}
			return s, nil
		}
		return s, s.start()
	}
	return s, nil
}

func (s *SessionScreen) toggleCurrent() {
	w := s.ctrl.Wizard
	v := s.lists[s.focus].Current()
	if v == "" {
		return
	}
	switch w.Step {
	case sess.StepTenseForms:
		if s.focus == 0 {
			w.ToggleTense(v)
		} else {
			w.ToggleForm(v)
		}
	case sess.StepVoiceTypes:
		if s.focus == 0 {
			w.ToggleVoice(v)
		} else {
			w.ToggleQuestionType(questiongen.Type(v))
		}
	case sess.StepCountTimer:
		n, _ := strconv.Atoi(v)
		if s.focus == 0 {
			w.SetQuestionCount(n)
		} else {
			w.SetTimer(n)
		}
	}
}

// start leaves the wizard and fetches the question batch.
func (s *SessionScreen) start() tea.Cmd {
	settings, token, err := s.ctrl.Begin()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	s.spinner = 0

	gen := s.generator
	fetch := func() tea.Msg {
		if gen == nil {
			return batchLoadedMsg{Token: token, Err: errNoGenerator}
		}
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		qs, err := gen.Generate(ctx, settings)
		return batchLoadedMsg{Token: token, Questions: qs, Err: err}
	}
	return tea.Batch(fetch, spinnerCmd())
}

// startQuestion prepares the input for the current question and starts
// its timer.
func (s *SessionScreen) startQuestion() tea.Cmd {
	s.errMsg = ""
	s.tickGen++
	q := s.ctrl.Current()

	var cmds []tea.Cmd
	if mc, ok := q.(questiongen.MultipleChoice); ok {
		s.mc = components.NewMultiChoice(mc.Options)
	} else {
		placeholder := "Type the converted sentence..."
		if q.Type() == questiongen.TypeFillInBlank {
			placeholder = "Type the verb..."
		}
		s.input = components.NewTextInput(placeholder, 200)
		cmds = append(cmds, s.input.Init())
	}
	if s.ctrl.HasTimer() {
		cmds = append(cmds, tickCmd(s.tickGen))
	}
	return tea.Batch(cmds...)
}

func (s *SessionScreen) afterAdvance() tea.Cmd {
	if s.ctrl.Phase == sess.PhaseResults {
		s.results = summary.New(s.ctrl.Result())
		return nil
	}
	return s.startQuestion()
}

func (s *SessionScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if msg.Gen != s.tickGen || s.ctrl.Phase != sess.PhaseInProgress {
		return s, nil
	}
	if s.ctrl.Tick() {
		s.input.Submit(false)
		index := s.ctrl.Index()
		return s, tea.Tick(sess.FeedbackDelay, func(time.Time) tea.Msg {
			return autoAdvanceMsg{Index: index}
		})
	}
	if s.ctrl.Answered() {
		return s, nil
	}
	// Keep ticking while paused by the quit dialog.
	return s, tickCmd(s.tickGen)
}

func (s *SessionScreen) handleQuestionKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.ctrl.PendingQuit() != nil {
		switch key {
		case "y", "Y":
			if _, err := s.ctrl.ConfirmQuit(); err == nil {
				s.results = summary.New(s.ctrl.Result())
			}
		case "n", "N", "esc":
			s.ctrl.CancelQuit()
		}
		return s, nil
	}

	if key == "esc" {
		_, _ = s.ctrl.Quit()
		return s, nil
	}

	if s.ctrl.Answered() {
		if key == "enter" {
			if err := s.ctrl.Advance(); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			return s, s.afterAdvance()
		}
		return s, nil
	}

	if _, ok := s.ctrl.Current().(questiongen.MultipleChoice); ok {
		s.mc = s.mc.Update(msg)
		if choice, ok := s.mc.Chosen(); ok {
			s.submit(choice)
		}
		return s, nil
	}

	if key == "enter" {
		s.submit(s.input.Value())
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SessionScreen) submit(answer string) {
	correct, err := s.ctrl.Submit(answer)
	if err != nil {
		s.errMsg = err.Error()
		s.mc = s.mc.Reset()
		return
	}
	s.errMsg = ""
	s.input.Submit(correct)
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{Gen: gen}
	})
}

func spinnerCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
