package home

import (
	"charm.land/lipgloss/v2"

	"github.com/alphabetz/alphabetz/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle  MascotVariant = iota // Default purple
	MascotAlert                      // Orange, exclamation: no LLM configured
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ Aa. │
└─────┘`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ Aa? │
└─────┘`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	if v == MascotAlert {
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
