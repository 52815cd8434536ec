// Package app hosts the root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alphabetz/alphabetz/internal/router"
	"github.com/alphabetz/alphabetz/internal/screen"
	"github.com/alphabetz/alphabetz/internal/screens/home"
	"github.com/alphabetz/alphabetz/internal/screens/welcome"
	"github.com/alphabetz/alphabetz/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Home home.Options
	// Status is shown on the right of the header, e.g. the model in use.
	Status string
	// SkipSplash starts directly on the home menu.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model. Screens handle their own escape
// key; the model only intercepts ctrl+c.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

// NewAppModel creates an AppModel starting on the splash screen, which
// replaces itself with the home menu.
func NewAppModel(opts Options) AppModel {
	var root screen.Screen
	if opts.SkipSplash {
		root = home.New(opts.Home)
	} else {
		root = welcome.New(func() screen.Screen { return home.New(opts.Home) })
	}
	return AppModel{
		router: router.New(root),
		status: opts.Status,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(NewAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
