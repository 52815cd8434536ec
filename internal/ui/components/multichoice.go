package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alphabetz/alphabetz/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a four-option selector. It reports the chosen option via
// Chosen once the learner presses Enter or a letter/number key.
type MultiChoice struct {
	Options  []string
	Selected int
	chosen   int
}

func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, chosen: -1}
}

// Update handles navigation. Enter, 1-4 and a-d choose an option.
func (m MultiChoice) Update(msg tea.Msg) MultiChoice {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || m.chosen >= 0 {
		return m
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.chosen = m.Selected
	default:
		if i := optionIndex(key); i >= 0 && i < len(m.Options) {
			m.Selected = i
			m.chosen = i
		}
	}
	return m
}

func optionIndex(key string) int {
	switch key {
	case "1", "a", "A":
		return 0
	case "2", "b", "B":
		return 1
	case "3", "c", "C":
		return 2
	case "4", "d", "D":
		return 3
	}
	return -1
}

// Chosen returns the chosen option, if any.
func (m MultiChoice) Chosen() (string, bool) {
	if m.chosen < 0 || m.chosen >= len(m.Options) {
		return "", false
	}
	return m.Options[m.chosen], true
}

// Reset clears the choice so the learner can pick again.
func (m MultiChoice) Reset() MultiChoice {
	m.chosen = -1
	return m
}

// View renders the options. When reveal is set the correct option is
// highlighted and a wrong pick is marked.
func (m MultiChoice) View(correct string, reveal bool) string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !reveal {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, optionLabels[i%len(optionLabels)], opt)

		var style lipgloss.Style
		switch {
		case reveal && opt == correct:
			style = theme.Correct
		case reveal && i == m.chosen:
			style = theme.Incorrect
		case reveal:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
