// Package summary renders the results of a practice session.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alphabetz/alphabetz/internal/router"
	"github.com/alphabetz/alphabetz/internal/screen"
	"github.com/alphabetz/alphabetz/internal/session"
	"github.com/alphabetz/alphabetz/internal/ui/components"
	"github.com/alphabetz/alphabetz/internal/ui/layout"
	"github.com/alphabetz/alphabetz/internal/ui/theme"
)

// RestartMsg asks the owning practice screen to start a new session.
type RestartMsg struct{}

// SummaryScreen displays the session result.
type SummaryScreen struct {
	result *session.Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

func New(result *session.Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start New Practice"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "r":
			return s, func() tea.Msg { return RestartMsg{} }
		case "esc", "q":
			return s, router.Pop
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	if r == nil {
		return ""
	}

	headline := theme.Incorrect
	if r.Passed() {
		headline = theme.Correct
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Centered(headline.Bold(true), width, r.Headline()))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, r.ScoreLine()))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("", float64(r.Percentage())/100, true, cw).View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Align(lipgloss.Center).Render(r.Message())))
	b.WriteString("\n\n")

	mins := int(r.Duration.Minutes())
	secs := int(r.Duration.Seconds()) % 60
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
		fmt.Sprintf("Time: %d:%02d", mins, secs)))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
