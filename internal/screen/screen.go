package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tuturo/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ProgressProvider is implemented by screens tied to one learning path.
// The header shows the returned progress next to the model name.
type ProgressProvider interface {
	Progress() string
}

// BackHandler is an optional interface for screens that handle Esc
// themselves, e.g. to leave an input mode or cancel pending work before
// being popped.
type BackHandler interface {
	Back() tea.Cmd
}

// FocusMsg is delivered to a screen when it becomes active again after the
// screen above it was popped.
type FocusMsg struct{}
