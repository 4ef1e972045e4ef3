// Package theory shows the lesson text for the current topic and moves
// between neighbouring topics.
package theory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tuturo/internal/curriculum"
	"github.com/abhisek/tuturo/internal/router"
	"github.com/abhisek/tuturo/internal/screen"
	"github.com/abhisek/tuturo/internal/tutor"
	"github.com/abhisek/tuturo/internal/ui/components"
	"github.com/abhisek/tuturo/internal/ui/layout"
	"github.com/abhisek/tuturo/internal/ui/theme"
)

// Screen displays the theory of the selected topic.
type Screen struct {
	tutor   *tutor.Tutor
	view    curriculum.View
	text    string
	loading bool
	errMsg  string
	frame   int
	scroll  int
	cancel  context.CancelFunc
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.BackHandler     = (*Screen)(nil)
)

// New creates a theory screen for the current topic of view.
func New(t *tutor.Tutor, view curriculum.View) *Screen {
	return &Screen{tutor: t, view: view}
}

func (s *Screen) Init() tea.Cmd {
	return s.load()
}

func (s *Screen) Title() string {
	return s.view.Subject
}

func (s *Screen) Progress() string {
	return fmt.Sprintf("topic %d/%d", s.view.CurrentIndex+1, len(s.view.Topics))
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "←/p", Description: "Previous"},
		{Key: "→/n", Description: "Next"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "c/x", Description: "Completed/Retry"},
	}
	if s.errMsg != "" {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Retry"})
	}
	return append(hints, layout.KeyHint{Key: "Esc/b", Description: "Overview"})
}

// Topic returns the topic on screen.
func (s *Screen) Topic() string {
	return s.view.CurrentTopic
}

func (s *Screen) load() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.loading = true
	s.errMsg = ""
	s.text = ""
	s.scroll = 0
	return tea.Batch(
		components.SpinnerTick(),
		s.tutor.RequestTheory(ctx, s.view.Subject, s.view.CurrentTopic),
	)
}

// Back cancels a pending request and returns to the overview. Visited
// topics and statuses are kept.
func (s *Screen) Back() tea.Cmd {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.loading = false
	s.tutor.Clear(s.view.Subject)
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tutor.TheoryMsg:
		if msg.Subject != s.view.Subject || msg.Topic != s.view.CurrentTopic {
			return s, nil
		}
		s.loading = false
		s.cancel = nil
		if msg.Err != nil {
			if !errors.Is(msg.Err, context.Canceled) {
				s.errMsg = tutor.Describe(msg.Err)
			}
			return s, nil
		}
		s.text = msg.Text
		return s, nil

	case components.SpinnerTickMsg:
		if !s.loading {
			return s, nil
		}
		s.frame++
		return s, components.SpinnerTick()

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "left", "p":
		return s, s.move(-1)
	case "right", "n":
		return s, s.move(1)
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		if s.scroll < strings.Count(s.text, "\n") {
			s.scroll++
		}
	case "c":
		s.setStatus(curriculum.StatusCompleted)
	case "x":
		s.setStatus(curriculum.StatusToRetry)
	case "r":
		if s.errMsg != "" {
			return s, s.load()
		}
	case "b":
		return s, s.Back()
	}
	return s, nil
}

// move opens the neighbouring topic. Moves past either end are ignored.
func (s *Screen) move(delta int) tea.Cmd {
	var ok bool
	if delta < 0 {
		_, ok = s.view.Previous()
	} else {
		_, ok = s.view.Next()
	}
	if !ok {
		return nil
	}

	v, err := s.tutor.Advance(s.view.Subject, delta)
	if err != nil {
		s.errMsg = tutor.Describe(err)
		return nil
	}
	s.view = v
	return s.load()
}

func (s *Screen) setStatus(status curriculum.TopicStatus) {
	v, err := s.tutor.SetStatus(s.view.Subject, s.view.CurrentTopic, status)
	if err != nil {
		s.errMsg = tutor.Describe(err)
		return
	}
	s.view = v
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	position := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Topic %d of %d", s.view.CurrentIndex+1, len(s.view.Topics)))
	heading := theme.Heading.Render(s.view.Label(s.view.CurrentTopic))
	top := heading + "\n" + position + "\n"

	nav := s.renderNav()
	bodyHeight := height - lipgloss.Height(top) - lipgloss.Height(nav) - 2
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var body string
	switch {
	case s.loading:
		body = components.Spinner(s.frame, "Writing your lesson...")
	case s.errMsg != "":
		body = theme.Failure.Render(s.errMsg)
	default:
		body = window(renderText(s.text, cw), s.scroll, bodyHeight)
	}

	body = lipgloss.NewStyle().Width(cw).Height(bodyHeight).Render(body)
	content := lipgloss.JoinVertical(lipgloss.Left, top, body, "", nav)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func (s *Screen) renderNav() string {
	prevLabel, hasPrev := s.view.Previous()
	nextLabel, hasNext := s.view.Next()
	if !hasPrev {
		prevLabel = "Start of path"
	}
	if !hasNext {
		nextLabel = "End of path"
	}
	prev := components.NewButton("←", "Previous: "+prevLabel, hasPrev && !s.loading)
	next := components.NewButton("→", "Next: "+nextLabel, hasNext && !s.loading)
	return lipgloss.JoinHorizontal(lipgloss.Center, prev.View(), "  ", next.View())
}

// renderText styles markdown headings and wraps the text to width.
func renderText(text string, width int) []string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(width)

	var out []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			title := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			out = append(out, theme.Heading.Render(title))
			continue
		}
		out = append(out, strings.Split(body.Render(line), "\n")...)
	}
	return out
}

// window returns at most height lines starting at offset, clamped so the
// last page stays full.
func window(lines []string, offset, height int) string {
	if offset > len(lines)-height {
		offset = len(lines) - height
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[offset:end], "\n")
}
