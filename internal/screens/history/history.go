package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tuturo/internal/screen"
	"github.com/abhisek/tuturo/internal/store"
	"github.com/abhisek/tuturo/internal/ui/layout"
	"github.com/abhisek/tuturo/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	Events []store.CurriculumEventRecord
	Err    error
}

// HistoryScreen displays past curriculum requests and their topics.
type HistoryScreen struct {
	eventRepo store.EventRepo
	events    []store.CurriculumEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.eventRepo.QueryCurriculumEvents(context.Background(), store.QueryOpts{Limit: historyLimit})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Topics"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No learning paths yet. Pick a subject to start!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, ev := range s.events {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-24s  %-9s  %s",
			prefix, ev.Timestamp.Format("Jan 02, 2006 15:04"), ev.Subject, ev.Action, summary(ev))

		style := lipgloss.NewStyle().Foreground(actionColor(ev.Action))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderDetail(ev, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderDetail(ev store.CurriculumEventRecord, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var b strings.Builder
	if len(ev.Topics) == 0 {
		detail := "No topics"
		if ev.Detail != "" {
			detail = ev.Detail
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Italic(true).Render("    "+detail)))
		b.WriteString("\n")
		return b.String()
	}
	for n, topic := range ev.Topics {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(fmt.Sprintf("    %2d. %s", n+1, topic))))
		b.WriteString("\n")
	}
	return b.String()
}

func summary(ev store.CurriculumEventRecord) string {
	switch ev.Action {
	case store.ActionGenerated:
		return fmt.Sprintf("%d topics", len(ev.Topics))
	case store.ActionRefused:
		return "declined by the model"
	default:
		return "request failed"
	}
}

func actionColor(action string) color.Color {
	switch action {
	case store.ActionGenerated:
		return theme.Success
	case store.ActionRefused:
		return theme.Accent
	case store.ActionFailed:
		return theme.Error
	default:
		return theme.Text
	}
}
