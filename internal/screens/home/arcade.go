package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/alphabetz/alphabetz/internal/screens/welcome"
	"github.com/alphabetz/alphabetz/internal/ui/theme"
)

const titleCompact = "A · L · P · H · A · B · E · T · Z"

const tagline = "English tense practice"

// renderTitle draws the title as a row of letter tiles, or a single spaced
// line when the terminal is small.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	if compact {
		return center.Render(style.Render(titleCompact))
	}

	row := welcome.RenderBanner(cw, len(welcome.Word))
	sub := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(tagline)
	return center.Render(row + "\n" + sub)
}

// renderLLMBanner renders a warning banner when no LLM provider is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to generate questions and conversions (see alphabetz --help)")
}

// renderMenuHint renders the description of the selected menu entry.
func renderMenuHint(hint string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.TrimSpace(hint))
}
