// Package overview lists the topics of one subject's curriculum, generating
// the curriculum first when asked to.
package overview

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tuturo/internal/curriculum"
	"github.com/abhisek/tuturo/internal/pathway"
	"github.com/abhisek/tuturo/internal/router"
	"github.com/abhisek/tuturo/internal/screen"
	"github.com/abhisek/tuturo/internal/screens/theory"
	"github.com/abhisek/tuturo/internal/tutor"
	"github.com/abhisek/tuturo/internal/ui/components"
	"github.com/abhisek/tuturo/internal/ui/layout"
	"github.com/abhisek/tuturo/internal/ui/theme"
)

// Screen shows a subject's topics with their status and visit progress.
type Screen struct {
	tutor    *tutor.Tutor
	subject  string
	generate bool
	view     curriculum.View
	cursor   int
	loading  bool
	refused  bool
	errMsg   string
	frame    int
	cancel   context.CancelFunc
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.BackHandler     = (*Screen)(nil)
)

// New opens the existing curriculum of subject.
func New(t *tutor.Tutor, subject string) *Screen {
	return &Screen{tutor: t, subject: subject}
}

// Generate requests a fresh curriculum for subject when the screen starts.
// An existing curriculum for the subject is replaced.
func Generate(t *tutor.Tutor, subject string) *Screen {
	return &Screen{tutor: t, subject: subject, generate: true}
}

func (s *Screen) Init() tea.Cmd {
	if s.generate {
		return s.request()
	}
	s.refresh()
	return nil
}

func (s *Screen) Title() string {
	return s.subject
}

func (s *Screen) Progress() string {
	if len(s.view.Topics) == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d visited", s.view.VisitedCount(), len(s.view.Topics))
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.loading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case s.retryable():
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "Esc", Description: "Choose another subject"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "c/x/u", Description: "Completed/Retry/Reset"},
		{Key: "Esc", Description: "Back"},
	}
}

// retryable reports whether the last request produced no curriculum.
func (s *Screen) retryable() bool {
	return s.refused || (s.errMsg != "" && len(s.view.Topics) == 0)
}

func (s *Screen) request() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.loading = true
	s.refused = false
	s.errMsg = ""
	return tea.Batch(components.SpinnerTick(), s.tutor.RequestCurriculum(ctx, s.subject))
}

func (s *Screen) refresh() {
	v, err := s.tutor.View(s.subject)
	if err != nil {
		s.errMsg = tutor.Describe(err)
		return
	}
	s.view = v
	if s.cursor >= len(v.Topics) {
		s.cursor = 0
	}
}

// Back cancels a pending request and returns to the previous screen.
func (s *Screen) Back() tea.Cmd {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.loading = false
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tutor.CurriculumMsg:
		if msg.Subject != s.subject {
			return s, nil
		}
		s.loading = false
		s.cancel = nil
		switch {
		case msg.Err != nil:
			if !errors.Is(msg.Err, context.Canceled) {
				s.errMsg = tutor.Describe(msg.Err)
			}
		case msg.Outcome.Refused:
			s.refused = true
		default:
			s.view = msg.Outcome.View
			s.cursor = 0
		}
		return s, nil

	case components.SpinnerTickMsg:
		if !s.loading {
			return s, nil
		}
		s.frame++
		return s, components.SpinnerTick()

	case screen.FocusMsg:
		if !s.loading && len(s.view.Topics) > 0 {
			s.refresh()
		}
		return s, nil

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if key == "r" && s.retryable() {
		return s, s.request()
	}
	if len(s.view.Topics) == 0 {
		return s, nil
	}

	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.view.Topics)-1 {
			s.cursor++
		}
	case "enter":
		return s, s.open()
	case "c":
		s.setStatus(curriculum.StatusCompleted)
	case "x":
		s.setStatus(curriculum.StatusToRetry)
	case "u":
		s.setStatus(curriculum.StatusNotStarted)
	}
	return s, nil
}

func (s *Screen) open() tea.Cmd {
	v, err := s.tutor.Select(s.subject, s.view.Topics[s.cursor])
	if err != nil {
		s.errMsg = tutor.Describe(err)
		return nil
	}
	s.view = v
	next := theory.New(s.tutor, v)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *Screen) setStatus(status curriculum.TopicStatus) {
	v, err := s.tutor.SetStatus(s.subject, s.view.Topics[s.cursor], status)
	if err != nil {
		s.errMsg = tutor.Describe(err)
		return
	}
	s.view = v
}

func (s *Screen) View(width, height int) string {
	switch {
	case s.loading:
		return components.Centered(components.Spinner(s.frame, fmt.Sprintf("Designing your %s learning path...", s.subject)), width, height)
	case s.refused:
		msg := theme.Warning.Render(pathway.RefusalMessage) + "\n\n" +
			theme.Hint.Render("Press r to ask again or Esc to choose another subject.")
		return components.Centered(lipgloss.NewStyle().Width(components.ContentWidth(width)).Render(msg), width, height)
	case len(s.view.Topics) == 0:
		msg := theme.Failure.Render(s.errMsg)
		if s.errMsg == "" {
			msg = theme.Hint.Render("No topics yet.")
		}
		return components.Centered(lipgloss.NewStyle().Width(components.ContentWidth(width)).Render(msg), width, height)
	}

	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Heading.Render(fmt.Sprintf("%s learning path", s.subject)))
	b.WriteString("\n")
	b.WriteString(components.TrackBar{
		Label: fmt.Sprintf("Visited %d of %d", s.view.VisitedCount(), len(s.view.Topics)),
		Cells: topicCells(s.view),
		Width: cw,
	}.View())
	b.WriteString("\n\n")

	items := make([]components.MenuItem, len(s.view.Topics))
	for i, topic := range s.view.Topics {
		items[i] = components.MenuItem{Label: fmt.Sprintf("%2d. %s", i+1, s.view.Label(topic))}
	}
	menu := components.NewMenu(items)
	menu.Selected = s.cursor

	listHeight := height - 5
	if s.errMsg != "" {
		listHeight -= 2
	}
	b.WriteString(menu.Window(listHeight))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Failure.Render(s.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}

// topicCells colours each topic by its status. Visited topics without a
// status stand out from the ones never opened.
func topicCells(v curriculum.View) []color.Color {
	cells := make([]color.Color, len(v.Topics))
	for i, t := range v.Topics {
		switch v.StatusOf(t) {
		case curriculum.StatusCompleted:
			cells[i] = theme.Success
		case curriculum.StatusInProgress:
			cells[i] = theme.Accent
		case curriculum.StatusToRetry:
			cells[i] = theme.Error
		default:
			cells[i] = theme.Border
			if v.Visited[t] {
				cells[i] = theme.Secondary
			}
		}
	}
	return cells
}
