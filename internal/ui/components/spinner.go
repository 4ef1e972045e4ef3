package components

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tuturo/internal/ui/theme"
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerTickMsg advances loading spinners.
type SpinnerTickMsg time.Time

// SpinnerTick schedules the next spinner frame.
func SpinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return SpinnerTickMsg(t)
	})
}

// Spinner renders frame n of the loading animation followed by label.
func Spinner(n int, label string) string {
	frame := spinnerFrames[n%len(spinnerFrames)]
	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(frame) + " " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
}
