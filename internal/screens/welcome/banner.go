package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/alphabetz/alphabetz/internal/ui/theme"
)

// Word is the title spelled out in tiles.
const Word = "ALPHABETZ"

const bannerCompact = "A L P H A B E T Z"

// tileWidth is the rendered width of one letter tile.
const tileWidth = 5

// RenderBanner returns the first shown letters of the title as tiles.
// Uses a compact fallback when the tiles would not fit in width.
func RenderBanner(width, shown int) string {
	shown = min(max(shown, 0), len(Word))
	if width < len(Word)*tileWidth {
		return lipgloss.NewStyle().
			Foreground(theme.ArcadeYellow).
			Bold(true).
			Render(bannerCompact[:max(shown*2-1, 0)])
	}

	tile := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ArcadeCyan).
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Padding(0, 1)
	blank := lipgloss.NewStyle().Width(tileWidth).Height(3)

	tiles := make([]string, 0, len(Word))
	for i, r := range Word {
		if i < shown {
			tiles = append(tiles, tile.Render(string(r)))
		} else {
			tiles = append(tiles, blank.Render(""))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}
