package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tuturo/internal/curriculum"
	"github.com/abhisek/tuturo/internal/llm"
	"github.com/abhisek/tuturo/internal/pathway"
	"github.com/abhisek/tuturo/internal/router"
	"github.com/abhisek/tuturo/internal/screen"
	"github.com/abhisek/tuturo/internal/screens/overview"
	"github.com/abhisek/tuturo/internal/screens/questionnaire"
	"github.com/abhisek/tuturo/internal/session"
	"github.com/abhisek/tuturo/internal/tutor"
)

const chessLiteral = "['Rules', 'Openings', 'Tactics', 'Strategy', 'Notation', " +
	"'Famous Games', 'Time Control', 'Puzzles', 'Tournaments', 'Endgames']"

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTutor(t *testing.T, responses ...llm.MockResponse) *tutor.Tutor {
	t.Helper()
	reg, err := session.NewRegistry(1, nil)
	require.NoError(t, err)
	svc := pathway.NewService(llm.NewMockProvider(responses...), pathway.DefaultConfig(), nil)
	return tutor.New(svc, reg.Create(nil), nil)
}

// choose highlights the menu entry with label and presses enter.
func choose(t *testing.T, h *HomeScreen, label string) tea.Cmd {
	t.Helper()
	for i, item := range h.menu.Items {
		if item.Label == label && !item.Disabled {
			h.menu.Selected = i
			_, cmd := h.Update(specialKey(tea.KeyEnter))
			return cmd
		}
	}
	t.Fatalf("no menu entry %q", label)
	return nil
}

func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok, "expected PushScreenMsg")
	return msg.Screen
}

func TestMenuListsPresets(t *testing.T) {
	h := New(newTutor(t))
	v := h.View(100, 60)
	assert.Contains(t, v, "What would you like to learn?")
	assert.Contains(t, v, curriculum.PresetSubjects[0])

	item, ok := h.menu.Current()
	require.True(t, ok)
	assert.Equal(t, curriculum.PresetSubjects[0], item.Label)
}

func TestPresetSubjectAsksPathQuestions(t *testing.T) {
	tu := newTutor(t)
	h := New(tu)

	q, ok := pushed(t, choose(t, h, "Music")).(*questionnaire.Screen)
	require.True(t, ok)
	assert.Equal(t, "Music", q.Title())

	var cmd tea.Cmd
	for range curriculum.PathQuestions {
		_, cmd = q.Update(keyPress('c'))
	}
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	ov, ok := replace.Screen.(*overview.Screen)
	require.True(t, ok)
	assert.Equal(t, "Music", ov.Title())

	assert.Equal(t, "Advanced", tu.Profile().Get(curriculum.KeyKnowledgeLevel))
	assert.Equal(t, "Curiosity", tu.Profile().Get(curriculum.KeyPrimaryGoal))
}

func TestOtherSubjectPrompt(t *testing.T) {
	h := New(newTutor(t))

	choose(t, h, curriculum.OtherSubject)
	require.True(t, h.typing)

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, "Please enter a subject.", h.notice)
	assert.Contains(t, h.View(100, 30), "Please enter a subject.")

	h.input.Model.SetValue("  Astronomy ")
	_, cmd = h.Update(specialKey(tea.KeyEnter))
	q, ok := pushed(t, cmd).(*questionnaire.Screen)
	require.True(t, ok)
	assert.Equal(t, "Astronomy", q.Title())
	assert.False(t, h.typing)
}

func TestBackLeavesPrompt(t *testing.T) {
	h := New(newTutor(t))
	choose(t, h, curriculum.OtherSubject)
	assert.Nil(t, h.Back())
	assert.False(t, h.typing)
}

func TestFocusAddsContinueEntries(t *testing.T) {
	tu := newTutor(t, llm.MockResponse{Content: chessLiteral})
	h := New(tu)

	require.NoError(t, tu.RequestCurriculum(context.Background(), "Chess")().(tutor.CurriculumMsg).Err)
	h.Update(screen.FocusMsg{})

	assert.Equal(t, "CONTINUE", h.menu.Items[0].Label)
	ov, ok := pushed(t, choose(t, h, "Chess")).(*overview.Screen)
	require.True(t, ok)
	assert.Equal(t, "Chess", ov.Title())
}

func TestHistoryDisabledWithoutAuditLog(t *testing.T) {
	h := New(newTutor(t))
	for _, item := range h.menu.Items {
		if item.Label == "History" {
			assert.True(t, item.Disabled)
			return
		}
	}
	t.Fatal("history entry missing")
}

func TestEditProfile(t *testing.T) {
	tu := newTutor(t)
	h := New(tu)

	q, ok := pushed(t, choose(t, h, "Edit profile")).(*questionnaire.Screen)
	require.True(t, ok)

	var cmd tea.Cmd
	for range curriculum.OnboardingQuestions {
		_, cmd = q.Update(keyPress('a'))
	}
	require.NotNil(t, cmd)
	_, ok = cmd().(router.PopScreenMsg)
	assert.True(t, ok)
	assert.Equal(t, "Under 18", tu.Profile().Get(curriculum.KeyAgeGroup))
}
