package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tuturo/internal/curriculum"
	"github.com/abhisek/tuturo/internal/router"
	"github.com/abhisek/tuturo/internal/screen"
	"github.com/abhisek/tuturo/internal/screens/home"
	"github.com/abhisek/tuturo/internal/screens/questionnaire"
	"github.com/abhisek/tuturo/internal/screens/welcome"
	"github.com/abhisek/tuturo/internal/tutor"
	"github.com/abhisek/tuturo/internal/ui/layout"
)

// Options configures the terminal UI.
type Options struct {
	Tutor *tutor.Tutor

	// Onboard asks the onboarding questions before the home screen.
	Onboard bool

	// SkipSplash starts directly on the first screen.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	tutor  *tutor.Tutor
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the welcome screen.
func newAppModel(opts Options) AppModel {
	t := opts.Tutor
	first := func() screen.Screen {
		if !opts.Onboard {
			return home.New(t)
		}
		return questionnaire.New("Welcome", curriculum.OnboardingQuestions, func(answers curriculum.Profile) tea.Cmd {
			t.Answer(answers)
			next := home.New(t)
			return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		})
	}

	var initial screen.Screen
	if opts.SkipSplash {
		initial = first()
	} else {
		initial = welcome.New(first)
	}
	return AppModel{
		router: router.New(initial),
		tutor:  t,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.BackHandler); ok {
				return m, h.Back()
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the frame for the current window size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.TooSmall(m.width, m.height)
	}

	active := m.router.Active()
	chrome := layout.Chrome{Status: m.status(active)}
	if active != nil {
		chrome.Title = active.Title()
	}

	if hp, ok := active.(screen.KeyHintProvider); ok {
		chrome.Hints = append(hp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		chrome.Hints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		chrome.Hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	return chrome.Render(m.width, m.height, m.router.View)
}

// status shows the active learning path's progress, then the model.
func (m AppModel) status(active screen.Screen) string {
	var parts []string
	if pp, ok := active.(screen.ProgressProvider); ok {
		if p := pp.Progress(); p != "" {
			parts = append(parts, p)
		}
	}
	if m.tutor != nil {
		parts = append(parts, "model "+m.tutor.ModelID())
	}
	return strings.Join(parts, " · ")
}

// Run starts the Bubble Tea program and blocks until the learner quits.
func Run(opts Options) error {
	if opts.Tutor == nil {
		return fmt.Errorf("app: no tutor configured")
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
