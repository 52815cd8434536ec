// Package home is the main menu.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alphabetz/alphabetz/internal/convertgen"
	"github.com/alphabetz/alphabetz/internal/questiongen"
	"github.com/alphabetz/alphabetz/internal/router"
	"github.com/alphabetz/alphabetz/internal/screen"
	converterscreen "github.com/alphabetz/alphabetz/internal/screens/converter"
	"github.com/alphabetz/alphabetz/internal/screens/history"
	"github.com/alphabetz/alphabetz/internal/screens/learn"
	"github.com/alphabetz/alphabetz/internal/screens/placeholder"
	sessionscreen "github.com/alphabetz/alphabetz/internal/screens/session"
	sess "github.com/alphabetz/alphabetz/internal/session"
	"github.com/alphabetz/alphabetz/internal/store"
	"github.com/alphabetz/alphabetz/internal/ui/components"
	"github.com/alphabetz/alphabetz/internal/ui/layout"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// Options configures the home menu.
type Options struct {
	Generator questiongen.Generator
	Converter convertgen.Converter
	// Events may be nil; history is then unavailable and sessions are
	// not recorded.
	Events   store.EventRepo
	Defaults questiongen.Settings
	// LLMReady reports whether a provider or gateway is configured.
	LLMReady bool
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu     components.Menu
	llmReady bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	items := []components.MenuItem{
		{Label: "LEARN TENSES", Hint: "Structures and examples for all 12 tenses", Action: func() tea.Cmd {
			return router.Push(learn.New())
		}},
		{Label: "PRACTICE", Hint: "Generated quizzes with optional timer", Action: func() tea.Cmd {
			var rec sess.Recorder
			if opts.Events != nil {
				rec = opts.Events
			}
			defaults := opts.Defaults
			if defaults.QuestionCount == 0 {
				defaults = questiongen.DefaultSettings()
			}
			return router.Push(sessionscreen.New(opts.Generator, sess.NewWithDefaults(defaults, rec)))
		}},
		{Label: "TENSE CONVERTER", Hint: "Rewrite a sentence into any tense, voice and form", Action: func() tea.Cmd {
			if opts.Converter == nil {
				return router.Push(placeholder.New("Tense Converter",
					"The converter needs an LLM provider.\nSet GEMINI_API_KEY (or another provider key) or pass --gateway."))
			}
			return router.Push(converterscreen.New(opts.Converter))
		}},
		{Label: "HISTORY", Hint: "Past practice sessions", Action: func() tea.Cmd {
			if opts.Events == nil {
				return router.Push(placeholder.New("History",
					"History is unavailable because the local database could not be opened."))
			}
			return router.Push(history.New(opts.Events))
		}},
		{Label: "QUIT", Hint: "Leave Alphabetz", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:     components.NewMenu(items),
		llmReady: opts.LLMReady,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "q" {
		return h, tea.Quit
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	variant := MascotIdle
	if !h.llmReady {
		variant = MascotAlert
	}
	if !compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(RenderMascot(variant)))
	}
	if !h.llmReady {
		sections = append(sections, renderLLMBanner(cw))
	}

	menu := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(h.menu.View(buttonWidth))
	sections = append(sections, menu, renderMenuHint(h.menu.SelectedHint(), cw))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Q", Description: "Quit"},
	}
}
