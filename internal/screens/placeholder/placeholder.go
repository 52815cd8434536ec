// Package placeholder shows a feature that cannot run in the current
// configuration.
package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alphabetz/alphabetz/internal/router"
	"github.com/alphabetz/alphabetz/internal/screen"
	"github.com/alphabetz/alphabetz/internal/ui/theme"
)

// PlaceholderScreen is a generic "unavailable" screen.
type PlaceholderScreen struct {
	title  string
	reason string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen with the given title and reason.
func New(title, reason string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, reason: reason}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "enter", "q":
			return p, router.Pop
		}
	}
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	reason := p.reason
	if reason == "" {
		reason = "This feature is not available right now."
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render("╌╌ Unavailable ╌╌\n\n" + reason)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
