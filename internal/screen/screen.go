// Package screen defines the contract between the router and the
// individual TUI screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/alphabetz/alphabetz/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between the header and footer.
	View(width, height int) string

	// Title is shown in the header. The splash screen returns "".
	Title() string
}

// KeyHintProvider is implemented by screens whose footer hints depend on
// their state, such as the practice wizard steps.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
