// Package questionnaire asks a fixed list of preset-answer questions and
// hands the answers to a callback.
package questionnaire

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tuturo/internal/curriculum"
	"github.com/abhisek/tuturo/internal/screen"
	"github.com/abhisek/tuturo/internal/ui/components"
	"github.com/abhisek/tuturo/internal/ui/layout"
	"github.com/abhisek/tuturo/internal/ui/theme"
)

// Screen walks the learner through questions one at a time.
type Screen struct {
	title     string
	questions []curriculum.Question
	index     int
	picker    components.Picker
	answers   curriculum.Profile
	onDone    func(curriculum.Profile) tea.Cmd
	done      bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a questionnaire. onDone receives the answers keyed by
// question key once the last question is answered.
func New(title string, questions []curriculum.Question, onDone func(curriculum.Profile) tea.Cmd) *Screen {
	s := &Screen{
		title:     title,
		questions: questions,
		answers:   curriculum.Profile{},
		onDone:    onDone,
	}
	if len(questions) > 0 {
		s.picker = newPicker(questions[0])
	}
	return s
}

func newPicker(q curriculum.Question) components.Picker {
	return components.NewPicker(q.Prompt, q.Options)
}

func (s *Screen) Init() tea.Cmd {
	if len(s.questions) == 0 {
		return s.finish()
	}
	return nil
}

func (s *Screen) Title() string {
	return s.title
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "A-D", Description: "Choose"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Esc", Description: "Back"},
	}
}

// Answers returns the answers given so far.
func (s *Screen) Answers() curriculum.Profile {
	return s.answers.Clone()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.done {
		return s, nil
	}
	if _, ok := msg.(tea.KeyMsg); !ok {
		return s, nil
	}

	s.picker, _ = s.picker.Update(msg)
	if !s.picker.Submitted {
		return s, nil
	}

	s.answers[s.questions[s.index].Key] = s.picker.Answer()
	s.index++
	if s.index < len(s.questions) {
		s.picker = newPicker(s.questions[s.index])
		return s, nil
	}
	return s, s.finish()
}

func (s *Screen) finish() tea.Cmd {
	s.done = true
	if s.onDone == nil {
		return nil
	}
	return s.onDone(s.answers.Clone())
}

func (s *Screen) View(width, height int) string {
	if s.done || len(s.questions) == 0 {
		return components.Centered(theme.Hint.Render("Thanks!"), width, height)
	}

	cw := components.ContentWidth(width)
	counter := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d", s.index+1, len(s.questions)))

	bar := components.TrackBar{Cells: components.Steps(s.index, len(s.questions)), Width: cw}.View()

	var b strings.Builder
	b.WriteString(counter)
	b.WriteString("\n\n")
	b.WriteString(components.Card(s.picker.View(), cw))
	b.WriteString("\n\n")
	b.WriteString(bar)

	return components.Centered(b.String(), width, height)
}
