package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tuturo/internal/ui/theme"
)

// Picker asks one question with lettered preset answers.
type Picker struct {
	Question  string
	Options   []string
	Selected  int
	Submitted bool
}

// NewPicker creates a picker with the first option highlighted.
func NewPicker(question string, options []string) Picker {
	return Picker{
		Question: question,
		Options:  options,
	}
}

// Init returns nil.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Letter keys pick an
// option directly.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if p.Submitted {
		return p, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if p.Selected > 0 {
			p.Selected--
		}
	case "down", "j":
		if p.Selected < len(p.Options)-1 {
			p.Selected++
		}
	case "enter":
		if len(p.Options) > 0 {
			p.Submitted = true
		}
	default:
		if len(key) == 1 {
			i := int(key[0] - 'a')
			if key[0] >= 'A' && key[0] <= 'Z' {
				i = int(key[0] - 'A')
			}
			if i >= 0 && i < len(p.Options) {
				p.Selected = i
				p.Submitted = true
			}
		}
	}

	return p, nil
}

// Answer returns the chosen option, or "" before submission.
func (p Picker) Answer() string {
	if !p.Submitted || p.Selected >= len(p.Options) {
		return ""
	}
	return p.Options[p.Selected]
}

// View renders the question and its options.
func (p Picker) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(p.Question) + "\n\n"

	for i, opt := range p.Options {
		prefix := "  "
		if i == p.Selected {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+rune(i), opt)

		switch {
		case p.Submitted && i == p.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case p.Submitted:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == p.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
