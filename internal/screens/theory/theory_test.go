package theory

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tuturo/internal/curriculum"
	"github.com/abhisek/tuturo/internal/llm"
	"github.com/abhisek/tuturo/internal/pathway"
	"github.com/abhisek/tuturo/internal/router"
	"github.com/abhisek/tuturo/internal/session"
	"github.com/abhisek/tuturo/internal/tutor"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

const chessLiteral = "['Rules', 'Openings', 'Tactics', 'Strategy', 'Notation', " +
	"'Famous Games', 'Time Control', 'Puzzles', 'Tournaments', 'Endgames']"

// newTheoryScreen opens topic of a ten-topic chess curriculum. Theory
// requests are answered by the mock's responder.
func newTheoryScreen(t *testing.T, topic string) (*Screen, *tutor.Tutor, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(llm.MockResponse{Content: chessLiteral})
	mock.Responder = func(req llm.Request) llm.MockResponse {
		last := req.Messages[len(req.Messages)-1].Content
		return llm.MockResponse{Content: "#### Lesson\nAbout " + last}
	}
	reg, err := session.NewRegistry(1, nil)
	require.NoError(t, err)
	tu := tutor.New(pathway.NewService(mock, pathway.DefaultConfig(), nil), reg.Create(nil), nil)

	cm := tu.RequestCurriculum(context.Background(), "Chess")().(tutor.CurriculumMsg)
	require.NoError(t, cm.Err)
	v, err := tu.Select("Chess", topic)
	require.NoError(t, err)

	s := New(tu, v)
	s.Init()
	return s, tu, mock
}

// deliver runs the pending theory request for the screen's topic.
func deliver(t *testing.T, s *Screen) {
	t.Helper()
	msg := s.tutor.RequestTheory(context.Background(), s.view.Subject, s.view.CurrentTopic)()
	s.Update(msg)
}

func TestShowsTheory(t *testing.T) {
	s, _, _ := newTheoryScreen(t, "Rules")
	assert.True(t, s.loading)
	assert.Contains(t, s.View(100, 30), "Writing your lesson")

	deliver(t, s)
	assert.False(t, s.loading)
	assert.Contains(t, s.text, "Rules")
	v := s.View(100, 30)
	assert.Contains(t, v, "Topic 1 of 10")
	assert.Contains(t, v, "Next: Openings")
	assert.Contains(t, v, "Start of path")
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	s, _, _ := newTheoryScreen(t, "Rules")
	_, cmd := s.Update(keyPress('n'))
	assert.Nil(t, cmd)
	assert.Equal(t, "Rules", s.Topic())
}

func TestNextAndPrevious(t *testing.T) {
	s, tu, _ := newTheoryScreen(t, "Rules")
	deliver(t, s)

	_, cmd := s.Update(keyPress('p'))
	assert.Nil(t, cmd, "previous on the first topic is disabled")

	_, cmd = s.Update(specialKey(tea.KeyRight))
	require.NotNil(t, cmd)
	assert.Equal(t, "Openings", s.Topic())
	assert.True(t, s.loading)
	deliver(t, s)

	s.Update(keyPress('n'))
	deliver(t, s)
	assert.Equal(t, "Tactics", s.Topic())

	v, err := tu.View("Chess")
	require.NoError(t, err)
	assert.Equal(t, 3, v.VisitedCount())
	assert.Equal(t, 2, v.CurrentIndex)
}

func TestNextDisabledOnLastTopic(t *testing.T) {
	s, _, _ := newTheoryScreen(t, "Endgames")
	deliver(t, s)

	_, cmd := s.Update(keyPress('n'))
	assert.Nil(t, cmd, "next on the last topic is disabled")
	assert.Equal(t, "Endgames", s.Topic())
	v := s.View(100, 30)
	assert.Contains(t, v, "Topic 10 of 10")
	assert.Contains(t, v, "End of path")
	assert.Contains(t, v, "Previous: Tournaments")
	assert.Equal(t, "topic 10/10", s.Progress())
}

func TestStaleTheoryIgnored(t *testing.T) {
	s, _, _ := newTheoryScreen(t, "Rules")
	s.Update(tutor.TheoryMsg{Subject: "Chess", Topic: "Openings", Text: "stale"})
	assert.True(t, s.loading)
	assert.Empty(t, s.text)
}

func TestErrorAndRetry(t *testing.T) {
	s, _, _ := newTheoryScreen(t, "Rules")
	s.Update(tutor.TheoryMsg{Subject: "Chess", Topic: "Rules", Err: &llm.ErrProviderUnavailable{}})
	assert.False(t, s.loading)
	assert.NotEmpty(t, s.errMsg)
	assert.Contains(t, s.View(100, 30), "could not be reached")

	_, cmd := s.Update(keyPress('r'))
	require.NotNil(t, cmd)
	assert.True(t, s.loading)
	assert.Empty(t, s.errMsg)
}

func TestCanceledRequestShowsNoError(t *testing.T) {
	s, _, _ := newTheoryScreen(t, "Rules")
	s.Update(tutor.TheoryMsg{Subject: "Chess", Topic: "Rules", Err: fmt.Errorf("theory generation: %w", context.Canceled)})
	assert.Empty(t, s.errMsg)
}

func TestMarkStatus(t *testing.T) {
	s, _, _ := newTheoryScreen(t, "Openings")
	deliver(t, s)

	s.Update(keyPress('c'))
	assert.Equal(t, curriculum.StatusCompleted, s.view.StatusOf("Openings"))
	s.Update(keyPress('x'))
	assert.Equal(t, curriculum.StatusToRetry, s.view.StatusOf("Openings"))
}

func TestBackClearsSelection(t *testing.T) {
	s, tu, _ := newTheoryScreen(t, "Openings")
	deliver(t, s)

	_, cmd := s.Update(keyPress('b'))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)

	v, err := tu.View("Chess")
	require.NoError(t, err)
	assert.False(t, v.Selected())
	assert.Equal(t, curriculum.StatusInProgress, v.StatusOf("Openings"))
}

func TestWindowClamps(t *testing.T) {
	lines := strings.Split("a\nb\nc\nd", "\n")
	assert.Equal(t, "c\nd", window(lines, 10, 2))
	assert.Equal(t, "a\nb\nc\nd", window(lines, 2, 10))
}
