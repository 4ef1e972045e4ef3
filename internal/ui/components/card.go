package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tuturo/internal/ui/theme"
)

// ContentWidth returns the inner width used for cards and reading columns.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border box at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 2).
		Render(content)
}

// Centered places content in the middle of a width x height area.
func Centered(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
