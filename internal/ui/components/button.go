package components

import (
	"github.com/abhisek/tuturo/internal/ui/theme"
)

// Button is a labelled action that can be greyed out.
type Button struct {
	Key     string
	Label   string
	Enabled bool
}

// NewButton creates a new button bound to a key.
func NewButton(key, label string, enabled bool) Button {
	return Button{Key: key, Label: label, Enabled: enabled}
}

// View renders the button.
func (b Button) View() string {
	label := b.Key + "  " + b.Label
	if b.Enabled {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Foreground(theme.Border).Render(label)
}
