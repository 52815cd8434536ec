// Package converter is the tense converter screen: a four-step wizard that
// rewrites one sentence into a chosen tense, voice and form.
package converter

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alphabetz/alphabetz/internal/convertgen"
	conv "github.com/alphabetz/alphabetz/internal/converter"
	"github.com/alphabetz/alphabetz/internal/router"
	"github.com/alphabetz/alphabetz/internal/screen"
	"github.com/alphabetz/alphabetz/internal/tenses"
	"github.com/alphabetz/alphabetz/internal/ui/components"
	"github.com/alphabetz/alphabetz/internal/ui/layout"
	"github.com/alphabetz/alphabetz/internal/ui/theme"
)

// convertTimeout covers every retry attempt.
const convertTimeout = 2 * time.Minute

const introText = "Turn any sentence into a different tense. Pick the time and aspect, " +
	"then the voice and form, and type the sentence you want to convert. " +
	"The result comes with its grammatical structure and an explanation."

var errNoConverter = errors.New("Configuration Error: no LLM provider configured. Set GEMINI_API_KEY or use --gateway.")

type convertedMsg struct {
	Token  int
	Result *convertgen.Result
	Err    error
}

// ConverterScreen implements screen.Screen for the converter.
type ConverterScreen struct {
	ctrl      *conv.Controller
	converter convertgen.Converter
	lists     [2]components.Checklist
	focus     int
	input     components.TextInput
}

var _ screen.Screen = (*ConverterScreen)(nil)
var _ screen.KeyHintProvider = (*ConverterScreen)(nil)

// New creates the screen. converter should already retry on throttling
// (see converter.WithRetry); nil leaves the Convert step failing with a
// configuration message.
func New(converter convertgen.Converter) *ConverterScreen {
	s := &ConverterScreen{ctrl: conv.New(), converter: converter}
	s.setupStep()
	return s
}

func (s *ConverterScreen) Init() tea.Cmd { return nil }
func (s *ConverterScreen) Title() string { return "Tense Converter" }

func (s *ConverterScreen) KeyHints() []layout.KeyHint {
	switch s.ctrl.Phase {
	case conv.PhaseLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case conv.PhaseResult:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Convert Another"},
			{Key: "Esc", Description: "Home"},
		}
	}
	next := "Next"
	if s.ctrl.Step == conv.TotalSteps {
		next = "Convert"
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: next}}
	switch s.ctrl.Step {
	case conv.StepTense, conv.StepVoiceForm:
		hints = append(hints,
			layout.KeyHint{Key: "Space", Description: "Select"},
			layout.KeyHint{Key: "Tab", Description: "Switch list"})
	}
	if s.ctrl.Step > conv.StepIntro {
		hints = append(hints, layout.KeyHint{Key: "Shift+Tab", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *ConverterScreen) setupStep() {
	s.focus = 0
	switch s.ctrl.Step {
	case conv.StepTense:
		s.lists = [2]components.Checklist{
			components.NewChecklist("Time", tenses.Times()).WithLabels("Present", "Past", "Future").AsRadio(),
			components.NewChecklist("Aspect", conv.AspectChoices).
				WithLabels("Simple", "Continuous", "Perfect", "Perfect Continuous").AsRadio(),
		}
	case conv.StepVoiceForm:
		s.lists = [2]components.Checklist{
			components.NewChecklist("Voice", conv.VoiceChoices).AsRadio(),
			components.NewChecklist("Form", conv.FormChoices).WithLabels("Affirmative", "Negative", "Question").AsRadio(),
		}
	case conv.StepSentence:
		s.input = components.NewTextInput("e.g. She walks the dog every morning.", 300)
		s.input.SetValue(s.ctrl.Input.Sentence)
	}
}

func (s *ConverterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case convertedMsg:
		s.ctrl.Finish(msg.Token, msg.Result, msg.Err)
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	if s.ctrl.Phase == conv.PhaseSettings && s.ctrl.Step == conv.StepSentence {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ConverterScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch s.ctrl.Phase {
	case conv.PhaseLoading:
		if key == "esc" {
			return s, router.Pop
		}
		return s, nil
	case conv.PhaseResult:
		switch key {
		case "enter":
			s.ctrl.Reset()
			s.setupStep()
		case "esc":
			return s, router.Pop
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s, router.Pop
	case "shift+tab":
		if s.ctrl.Back() {
			s.setupStep()
		}
		return s, nil
	case "enter":
		return s, s.next()
	}

	if s.ctrl.Step == conv.StepSentence {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		s.ctrl.Input.Sentence = s.input.Value()
		return s, cmd
	}

	switch key {
	case "tab":
		s.focus = 1 - s.focus
	case "up", "k":
		s.lists[s.focus].Move(-1)
	case "down", "j":
		s.lists[s.focus].Move(1)
	case "space", " ", "x":
		s.selectCurrent()
	}
	return s, nil
}

func (s *ConverterScreen) selectCurrent() {
	v := s.lists[s.focus].Current()
	in := &s.ctrl.Input
	switch {
	case s.ctrl.Step == conv.StepTense && s.focus == 0:
		in.Time = v
	case s.ctrl.Step == conv.StepTense:
		in.Aspect = v
	case s.ctrl.Step == conv.StepVoiceForm && s.focus == 0:
		in.Voice = v
	case s.ctrl.Step == conv.StepVoiceForm:
		in.Form = v
	}
}

func (s *ConverterScreen) next() tea.Cmd {
	if s.ctrl.Step < conv.TotalSteps {
		if s.ctrl.Next() {
			s.setupStep()
		}
		return nil
	}

	s.ctrl.Input.Sentence = s.input.Value()
	req, token, err := s.ctrl.Begin()
	if err != nil {
		return nil
	}
	converter := s.converter
	return func() tea.Msg {
		if converter == nil {
			return convertedMsg{Token: token, Err: errNoConverter}
		}
		ctx, cancel := context.WithTimeout(context.Background(), convertTimeout)
		defer cancel()
		res, err := converter.Convert(ctx, req)
		return convertedMsg{Token: token, Result: res, Err: err}
	}
}

func (s *ConverterScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	switch s.ctrl.Phase {
	case conv.PhaseLoading:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Converting sentence..."))
	case conv.PhaseResult:
		return components.CabinetFrame(s.renderResult(cw), width, height)
	}

	var body string
	in := s.ctrl.Input
	switch s.ctrl.Step {
	case conv.StepIntro:
		body = theme.Title.Width(cw).Render("Tense Converter") + "\n\n" +
			lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(introText)
	case conv.StepTense:
		body = s.renderLists(
			func(v string) bool { return v == in.Time },
			func(v string) bool { return v == in.Aspect })
		if title := s.ctrl.TenseTitle(); s.ctrl.TenseID() != "" {
			body += "\n\n" + theme.Heading.Render("Target: ") + theme.Body.Render(title)
		}
	case conv.StepVoiceForm:
		body = s.renderLists(
			func(v string) bool { return v == in.Voice },
			func(v string) bool { return v == in.Form })
	case conv.StepSentence:
		summary := strings.Join([]string{s.ctrl.TenseTitle(), in.Voice, in.Form}, " · ")
		body = theme.Heading.Render("Sentence to convert") + "\n\n" + s.input.View() + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Target: "+summary)
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")
	if e := s.ctrl.Error(); e != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Error).Render(e))
		b.WriteString("\n\n")
	}
	next := "Next"
	if s.ctrl.Step == conv.TotalSteps {
		next = "Convert"
	}
	b.WriteString(components.StepIndicator(s.ctrl.Step, conv.TotalSteps) + "    " +
		components.Button(next, s.ctrl.CanAdvance(), len(next)+6))

	return components.CabinetFrame(b.String(), width, height)
}

func (s *ConverterScreen) renderLists(left, right func(string) bool) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.lists[0].View(left, s.focus == 0), "      ", s.lists[1].View(right, s.focus == 1))
}

func (s *ConverterScreen) renderResult(cw int) string {
	res := s.ctrl.Result()
	req := s.ctrl.Request()
	if res == nil {
		return ""
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	text := lipgloss.NewStyle().Width(cw).Foreground(theme.Text)

	var b strings.Builder
	b.WriteString(theme.Correct.Render("Conversion Complete!"))
	b.WriteString("\n\n")
	b.WriteString(dim.Render("Original"))
	b.WriteString("\n")
	b.WriteString(text.Render(req.SourceSentence))
	b.WriteString("\n\n")
	b.WriteString(dim.Render(req.TargetTenseTitle + " · " + req.TargetVoice + " · " + req.TargetForm))
	b.WriteString("\n")
	b.WriteString(components.Card(lipgloss.NewStyle().Bold(true).Render(res.ConvertedSentence), cw))
	b.WriteString("\n\n")
	b.WriteString(theme.Heading.Render("Structure"))
	b.WriteString("\n")
	b.WriteString(theme.Formula.Render(res.Structure))
	b.WriteString("\n\n")
	b.WriteString(theme.Heading.Render("Explanation"))
	b.WriteString("\n")
	b.WriteString(text.Render(res.Explanation))
	return b.String()
}
