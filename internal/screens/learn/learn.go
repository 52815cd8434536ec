// Package learn shows the tense reference: a list grouped by time, and a
// detail card per tense.
package learn

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alphabetz/alphabetz/internal/router"
	"github.com/alphabetz/alphabetz/internal/screen"
	"github.com/alphabetz/alphabetz/internal/tenses"
	"github.com/alphabetz/alphabetz/internal/ui/layout"
	"github.com/alphabetz/alphabetz/internal/ui/theme"
)

// ListScreen lists every tense.
type ListScreen struct {
	items    []tenses.Template
	selected int
	offset   int
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)

func New() *ListScreen {
	return &ListScreen{items: tenses.All()}
}

func (s *ListScreen) Init() tea.Cmd { return nil }
func (s *ListScreen) Title() string { return "Learn Tenses" }

func (s *ListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.items)-1 {
			s.selected++
		}
	case "enter":
		if s.selected < len(s.items) {
			return s, router.Push(NewDetail(s.items[s.selected]))
		}
	}
	return s, nil
}

func (s *ListScreen) View(width, height int) string {
	var lines []string
	var lineOfSelected int
	lastTime := ""
	for i, t := range s.items {
		tm, _, _ := strings.Cut(t.ID, "-")
		if tm != lastTime {
			if lastTime != "" {
				lines = append(lines, "")
			}
			lines = append(lines, theme.Heading.Render("  "+strings.ToUpper(tm)))
			lastTime = tm
		}
		if i == s.selected {
			lineOfSelected = len(lines)
			lines = append(lines, theme.Selected.Render("  ▸ "+t.Title))
		} else {
			lines = append(lines, theme.Unselected.Render("    "+t.Title))
		}
	}

	// Keep the selection visible.
	visible := max(height-2, 1)
	if lineOfSelected < s.offset {
		s.offset = lineOfSelected
	}
	if lineOfSelected >= s.offset+visible {
		s.offset = lineOfSelected - visible + 1
	}
	end := min(s.offset+visible, len(lines))

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		"\n"+strings.Join(lines[s.offset:end], "\n"))
}

// DetailScreen shows the structures and examples for one tense, one voice
// at a time.
type DetailScreen struct {
	tense tenses.Template
	voice tenses.Voice
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

func NewDetail(t tenses.Template) *DetailScreen {
	return &DetailScreen{tense: t, voice: tenses.VoiceActive}
}

func (d *DetailScreen) Init() tea.Cmd { return nil }
func (d *DetailScreen) Title() string { return d.tense.Title }

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Active/Passive"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "v", "left", "right", "h", "l":
			d.toggleVoice()
		}
	}
	return d, nil
}

func (d *DetailScreen) toggleVoice() {
	if d.voice == tenses.VoiceActive {
		d.voice = tenses.VoicePassive
	} else {
		d.voice = tenses.VoiceActive
	}
}

// Voice is the voice currently displayed.
func (d *DetailScreen) Voice() tenses.Voice { return d.voice }

func (d *DetailScreen) View(width, height int) string {
	cw := min(width-8, 76)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + d.tense.Title))
	b.WriteString("\n\n  ")

	for _, v := range []tenses.Voice{tenses.VoiceActive, tenses.VoicePassive} {
		label := " Active Voice "
		if v == tenses.VoicePassive {
			label = " Passive Voice "
		}
		if v == d.voice {
			b.WriteString(lipgloss.NewStyle().Background(theme.Primary).Foreground(theme.Text).Bold(true).Render(label))
		} else {
			b.WriteString(dim.Render(label))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	for _, e := range d.tense.Entries(d.voice) {
		card := theme.Heading.Render(string(e.Form)) + "\n" +
			theme.Formula.Render(e.Structure) + "\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Italic(true).Render(fmt.Sprintf("e.g. %s", e.Example))
		b.WriteString(lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Width(cw).
			MarginLeft(2).
			Padding(0, 1).
			Render(card))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}
