// Package history lists recorded practice sessions.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/alphabetz/alphabetz/internal/router"
	"github.com/alphabetz/alphabetz/internal/screen"
	"github.com/alphabetz/alphabetz/internal/session"
	"github.com/alphabetz/alphabetz/internal/store"
	"github.com/alphabetz/alphabetz/internal/ui/layout"
	"github.com/alphabetz/alphabetz/internal/ui/theme"
)

// pageSize is the number of sessions loaded.
const pageSize = 50

type historyLoadedMsg struct {
	Sessions []store.PracticeSessionRecord
	Err      error
}

// HistoryScreen displays past practice sessions.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.PracticeSessionRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		sessions, err := repo.QueryPracticeSessions(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, router.Pop
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+summaryLine(rec))))
		b.WriteString("\n")

		if s.expanded[i] {
			dim := lipgloss.NewStyle().Foreground(theme.TextDim)
			for _, line := range detailLines(rec) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(line)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func summaryLine(rec store.PracticeSessionRecord) string {
	dateStr := rec.Timestamp.Format("Jan 02, 2006 15:04")
	durationStr := fmt.Sprintf("%d:%02d", rec.DurationSecs/60, rec.DurationSecs%60)
	pct := percent(rec.Score, rec.Attempted)
	score := lipgloss.NewStyle().Foreground(scoreColor(pct)).
		Render(fmt.Sprintf("%d/%d (%d%%)", rec.Score, rec.Attempted, pct))
	status := ""
	if !rec.FullSession {
		status = "  ended early"
	}
	return fmt.Sprintf("%s  %s  %s%s", dateStr, durationStr, score, status)
}

func detailLines(rec store.PracticeSessionRecord) []string {
	timer := "no timer"
	if rec.TimerSecs > 0 {
		timer = fmt.Sprintf("%ds per question", rec.TimerSecs)
	}
	lines := []string{
		"    Tenses: " + orNone(rec.TenseCategories),
		"    Forms: " + orNone(rec.Forms) + "   Voices: " + orNone(rec.Voices),
		"    Types: " + orNone(rec.QuestionTypes),
		fmt.Sprintf("    Planned %d questions, %s", rec.Planned, timer),
	}
	if rec.FallbackUsed {
		lines = append(lines, "    Used offline fallback questions")
	}
	return lines
}

func orNone(vals []string) string {
	if len(vals) == 0 {
		return "-"
	}
	return strings.Join(vals, ", ")
}

func percent(score, total int) int {
	if total == 0 {
		return 0
	}
	return score * 100 / total
}

func scoreColor(pct int) color.Color {
	if pct >= session.PassPercentage {
		return theme.Success
	}
	return theme.Accent
}
