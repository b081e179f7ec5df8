// Package screen defines the contract between the router and the
// assessment screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/phonassess/internal/ui/layout"
)

// Screen is one full-window view of the assessment.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens whose footer hints depend on
// their state.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Func builds the screen that should follow the current one. Screens take a
// Func instead of importing each other.
type Func func() Screen
