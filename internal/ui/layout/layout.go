// Package layout draws the frame every screen sits in: a title bar with the
// active backend, the screen body, and a bar of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/alphabetz/alphabetz/internal/ui/theme"
)

// The smallest terminal the practice screens fit in, and the size below
// which screens switch to their compact rendering.
const (
	MinWidth  = 80
	MinHeight = 24

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

const (
	brand        = "Aa Alphabetz"
	hintSep      = "  ·  "
	barPadding   = 4 // border plus one column of padding per side
	ellipsis     = "…"
	statusShare  = 3 // the status may take at most 1/statusShare of the bar
	compactBrand = "Aa"
)

// KeyHint is one entry in the footer, e.g. {"enter", "check answer"}.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool { return width < CompactWidthThreshold }

func IsCompactHeight(height int) bool { return height < CompactHeightThreshold }

// IsTooSmall reports whether a screen cannot be drawn at all.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage replaces the whole view while the terminal is too
// small.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf(
		"Alphabetz needs a %d×%d terminal.\n\nThis one is %d×%d.\nEnlarge the window to keep practising.",
		MinWidth, MinHeight, width, height,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

func bar(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// clip shortens s to n cells, marking the cut.
func clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + ellipsis
}

// RenderHeader draws the title bar: the brand on the left, the screen title
// centred and status (the backend in use) on the right. On narrow bars the
// brand shrinks and the status is clipped before the title is touched.
func RenderHeader(title, status string, width int) string {
	inner := max(width-barPadding, 0)

	name := brand
	if IsCompactWidth(width) {
		name = compactBrand
	}
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(name)
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(clip(status, inner/statusShare))

	mid := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 0)
	centre := lipgloss.PlaceHorizontal(mid, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(clip(title, mid)))

	return bar(width, left+centre+right)
}

// RenderFooter draws the key hints in order. Hints that do not fit are
// dropped from the end.
func RenderFooter(hints []KeyHint, width int) string {
	inner := max(width-barPadding, 0)
	keyStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var parts []string
	used := 0
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		w := lipgloss.Width(part)
		if len(parts) > 0 {
			w += lipgloss.Width(hintSep)
		}
		if used+w > inner {
			break
		}
		parts = append(parts, part)
		used += w
	}
	return bar(width, strings.Join(parts, descStyle.Render(hintSep)))
}

// RenderFrame stacks header, body and footer, giving the body whatever
// height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
