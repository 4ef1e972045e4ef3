package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tuturo/internal/curriculum"
	"github.com/abhisek/tuturo/internal/router"
	"github.com/abhisek/tuturo/internal/screen"
	"github.com/abhisek/tuturo/internal/screens/history"
	"github.com/abhisek/tuturo/internal/screens/overview"
	"github.com/abhisek/tuturo/internal/screens/questionnaire"
	"github.com/abhisek/tuturo/internal/tutor"
	"github.com/abhisek/tuturo/internal/ui/components"
	"github.com/abhisek/tuturo/internal/ui/layout"
	"github.com/abhisek/tuturo/internal/ui/theme"
)

const maxSubjectLen = 80

// HomeScreen lets the learner pick a subject, resume one, or review past
// requests.
type HomeScreen struct {
	tutor  *tutor.Tutor
	menu   components.Menu
	input  components.TextInput
	typing bool
	notice string
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
	_ screen.BackHandler     = (*HomeScreen)(nil)
)

// New creates a new HomeScreen.
func New(t *tutor.Tutor) *HomeScreen {
	h := &HomeScreen{
		tutor: t,
		input: components.NewTextInput("e.g. Astronomy", maxSubjectLen),
	}
	h.build()
	return h
}

// build recreates the menu from the subjects that already have a path.
func (h *HomeScreen) build() {
	subjects := h.tutor.Subjects()

	var items []components.MenuItem
	if len(subjects) > 0 {
		items = append(items, components.MenuItem{Label: "CONTINUE", Disabled: true})
		for _, subject := range subjects {
			items = append(items, components.MenuItem{Label: subject, Action: h.resume(subject)})
		}
		items = append(items, components.MenuItem{Label: "", Disabled: true})
	}

	items = append(items, components.MenuItem{Label: "NEW LEARNING PATH", Disabled: true})
	for _, subject := range curriculum.PresetSubjects {
		items = append(items, components.MenuItem{Label: subject, Action: h.start(subject)})
	}
	items = append(items, components.MenuItem{Label: curriculum.OtherSubject, Action: func() tea.Cmd {
		h.typing = true
		h.notice = ""
		h.input.Reset()
		return h.input.Init()
	}})

	items = append(items,
		components.MenuItem{Label: "", Disabled: true},
		components.MenuItem{Label: "Edit profile", Action: h.editProfile},
		components.MenuItem{Label: "History", Disabled: h.tutor.Events() == nil, Action: func() tea.Cmd {
			return push(history.New(h.tutor.Events()))
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// start asks the path questions for subject, then generates its curriculum.
func (h *HomeScreen) start(subject string) func() tea.Cmd {
	return func() tea.Cmd {
		q := questionnaire.New(subject, curriculum.PathQuestions, func(answers curriculum.Profile) tea.Cmd {
			h.tutor.Answer(answers)
			next := overview.Generate(h.tutor, subject)
			return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		})
		return push(q)
	}
}

func (h *HomeScreen) resume(subject string) func() tea.Cmd {
	return func() tea.Cmd {
		return push(overview.New(h.tutor, subject))
	}
}

func (h *HomeScreen) editProfile() tea.Cmd {
	q := questionnaire.New("Profile", curriculum.OnboardingQuestions, func(answers curriculum.Profile) tea.Cmd {
		h.tutor.Answer(answers)
		return func() tea.Msg { return router.PopScreenMsg{} }
	})
	return push(q)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.typing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

// Back leaves the free-text subject prompt.
func (h *HomeScreen) Back() tea.Cmd {
	h.typing = false
	h.notice = ""
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(screen.FocusMsg); ok {
		h.build()
		return h, nil
	}

	if h.typing {
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
			subject := h.input.Value()
			if subject == "" {
				h.notice = "Please enter a subject."
				return h, nil
			}
			h.typing = false
			return h, h.start(subject)()
		}
		var cmd tea.Cmd
		h.input, cmd = h.input.Update(msg)
		return h, cmd
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("What would you like to learn?"))
	b.WriteString("\n\n")

	if h.typing {
		b.WriteString(theme.Body.Render("Enter a subject:"))
		b.WriteString("\n\n")
		b.WriteString(components.Card(h.input.View(), cw))
		if h.notice != "" {
			b.WriteString("\n\n")
			b.WriteString(theme.Failure.Render(h.notice))
		}
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
	}

	menuHeight := height - 4
	b.WriteString(h.menu.Window(menuHeight))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}
