// Package layout draws the frame shared by every screen: a header naming
// the subject, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tuturo/internal/ui/theme"
)

// Smallest terminal a theory page stays readable in.
const (
	MinWidth  = 60
	MinHeight = 18
)

// KeyHint is one key binding listed in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Chrome is the frame drawn around the active screen.
type Chrome struct {
	Title  string // centre of the header, usually the subject
	Status string // right of the header, e.g. progress and model
	Hints  []KeyHint
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// TooSmall is shown instead of the frame on undersized terminals.
func TooSmall(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf("Terminal too small\n\nLearning paths need %d x %d\n(now %d x %d)",
			MinWidth, MinHeight, width, height))
}

// Render draws the frame at width x height. body is called with the space
// left between header and footer.
func (c Chrome) Render(width, height int, body func(width, height int) string) string {
	header := c.header(width)
	footer := c.footer(width)

	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body(width, bodyHeight))

	return header + "\n" + content + "\n" + footer
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// header keeps the title centred. The status is dropped when it would
// collide with the title.
func (c Chrome) header(width int) string {
	inner := width - 4
	if inner < 0 {
		inner = 0
	}
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Tuturo")
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(c.Title)
	status := lipgloss.NewStyle().Foreground(theme.Accent).Render(c.Status)

	nameW, titleW, statusW := lipgloss.Width(name), lipgloss.Width(title), lipgloss.Width(status)
	left := (inner-titleW)/2 - nameW
	if left < 1 {
		left = 1
	}
	right := inner - nameW - left - titleW - statusW
	if right < 1 {
		status, right = "", inner-nameW-left-titleW
		if right < 0 {
			right = 0
		}
	}

	line := name + strings.Repeat(" ", left) + title + strings.Repeat(" ", right) + status
	return bar.Width(width).Padding(0, 1).Render(line)
}

// footer lists the hints, wrapping onto further lines when they do not
// fit one.
func (c Chrome) footer(width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	inner := width - 4
	var lines []string
	var line string
	for _, h := range c.Hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		switch {
		case line == "":
			line = part
		case lipgloss.Width(line)+3+lipgloss.Width(part) > inner:
			lines = append(lines, line)
			line = part
		default:
			line += "   " + part
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return bar.Width(width).Padding(0, 1).Render(strings.Join(lines, "\n"))
}
