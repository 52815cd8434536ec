package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/alphabetz/alphabetz/internal/ui/theme"
)

// Checklist renders a list of options with a cursor. It does not own the
// selection: callers pass a predicate to View and apply toggles themselves.
type Checklist struct {
	Title  string
	Values []string
	Labels []string // optional, parallel to Values
	Radio  bool     // render (•) instead of [x]
	Cursor int
}

func NewChecklist(title string, values []string) Checklist {
	return Checklist{Title: title, Values: values}
}

// WithLabels sets display labels.
func (c Checklist) WithLabels(labels ...string) Checklist {
	c.Labels = labels
	return c
}

func (c Checklist) AsRadio() Checklist {
	c.Radio = true
	return c
}

// Move shifts the cursor, clamped to the list.
func (c *Checklist) Move(delta int) {
	c.Cursor += delta
	if c.Cursor < 0 {
		c.Cursor = 0
	}
	if c.Cursor >= len(c.Values) {
		c.Cursor = len(c.Values) - 1
	}
}

// Current is the value under the cursor.
func (c Checklist) Current() string {
	if c.Cursor < 0 || c.Cursor >= len(c.Values) {
		return ""
	}
	return c.Values[c.Cursor]
}

func (c Checklist) label(i int) string {
	if i < len(c.Labels) && c.Labels[i] != "" {
		return c.Labels[i]
	}
	return c.Values[i]
}

// View renders the list. The cursor is only drawn when focused.
func (c Checklist) View(checked func(value string) bool, focused bool) string {
	var b strings.Builder
	title := theme.Heading
	if !focused {
		title = lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
	}
	b.WriteString(title.Render(c.Title))
	b.WriteString("\n")

	for i, v := range c.Values {
		mark := "[ ]"
		if c.Radio {
			mark = "( )"
		}
		if checked(v) {
			mark = "[x]"
			if c.Radio {
				mark = "(•)"
			}
		}

		prefix := "  "
		style := theme.Unselected
		if focused && i == c.Cursor {
			prefix = "▸ "
			style = theme.Selected
		}
		if checked(v) && !(focused && i == c.Cursor) {
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		b.WriteString(style.Render(prefix + mark + " " + c.label(i)))
		b.WriteString("\n")
	}
	return b.String()
}
