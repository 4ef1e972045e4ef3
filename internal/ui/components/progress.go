package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tuturo/internal/ui/theme"
)

// TrackBar draws one block per step, such as a topic of a learning path,
// so each step keeps its own colour. Blocks stretch to fill Width and
// drop their gaps when space runs short.
type TrackBar struct {
	Label string
	Cells []color.Color
	Width int
}

// Steps colours the first done of total cells as finished.
func Steps(done, total int) []color.Color {
	cells := make([]color.Color, total)
	for i := range cells {
		cells[i] = theme.Border
		if i < done {
			cells[i] = theme.Secondary
		}
	}
	return cells
}

func (b TrackBar) View() string {
	var out strings.Builder
	if b.Label != "" {
		out.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(b.Label))
		out.WriteString("  ")
	}
	n := len(b.Cells)
	if n == 0 {
		return out.String()
	}

	avail := b.Width - lipgloss.Width(out.String())
	gap := 1
	if avail < 2*n-1 {
		gap = 0
	}
	cell := (avail - gap*(n-1)) / n
	if cell < 1 {
		cell = 1
	}

	block := strings.Repeat(" ", cell)
	for i, c := range b.Cells {
		if i > 0 && gap > 0 {
			out.WriteString(" ")
		}
		out.WriteString(lipgloss.NewStyle().Background(c).Render(block))
	}
	return out.String()
}
