package overview

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tuturo/internal/curriculum"
	"github.com/abhisek/tuturo/internal/extract"
	"github.com/abhisek/tuturo/internal/llm"
	"github.com/abhisek/tuturo/internal/pathway"
	"github.com/abhisek/tuturo/internal/router"
	"github.com/abhisek/tuturo/internal/screen"
	"github.com/abhisek/tuturo/internal/screens/theory"
	"github.com/abhisek/tuturo/internal/session"
	"github.com/abhisek/tuturo/internal/tutor"
	"github.com/abhisek/tuturo/internal/ui/theme"
)

const chessLiteral = "['Rules', 'Openings', 'Endgames', 'Strategy', 'Tactics', " +
	"'Notation', 'Famous Games', 'Time Control', 'Puzzles', 'Tournaments']"

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

// generated returns a screen whose curriculum request has completed.
func generated(t *testing.T, tu *tutor.Tutor, subject string) *Screen {
	t.Helper()
	s := Generate(tu, subject)
	s.Init()
	require.True(t, s.loading)
	s.Update(tu.RequestCurriculum(context.Background(), subject)())
	return s
}

func TestGenerateShowsTopics(t *testing.T) {
	tu := newTutor(t, llm.MockResponse{Content: chessLiteral})
	s := Generate(tu, "Chess")
	s.Init()
	assert.Contains(t, s.View(100, 30), "Designing your Chess learning path")

	s.Update(tu.RequestCurriculum(context.Background(), "Chess")())
	assert.False(t, s.loading)
	v := s.View(100, 30)
	assert.Contains(t, v, "Visited 0 of 10")
	assert.Contains(t, v, "1. Rules")
	assert.Contains(t, v, "3. Endgames")
}

func TestRefusal(t *testing.T) {
	tu := newTutor(t,
		llm.MockResponse{Content: extract.RefusalLiteral},
		llm.MockResponse{Content: chessLiteral},
	)
	s := generated(t, tu, "Chess")
	assert.True(t, s.refused)
	assert.Contains(t, s.View(100, 30), "Sorry, this subject")

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd, "nothing to open after a refusal")

	_, cmd = s.Update(keyPress('r'))
	require.NotNil(t, cmd)
	assert.True(t, s.loading)
	assert.False(t, s.refused)

	s.Update(tu.RequestCurriculum(context.Background(), "Chess")())
	assert.Len(t, s.view.Topics, 10)
}

func TestGenerationError(t *testing.T) {
	tu := newTutor(t, llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	s := generated(t, tu, "Chess")
	assert.Contains(t, s.View(100, 30), "could not be reached")
	assert.True(t, s.retryable())
}

func TestOpenTopicPushesTheory(t *testing.T) {
	tu := newTutor(t, llm.MockResponse{Content: chessLiteral})
	s := generated(t, tu, "Chess")

	s.Update(specialKey(tea.KeyDown))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	th, ok := push.Screen.(*theory.Screen)
	require.True(t, ok)
	assert.Equal(t, "Openings", th.Topic())
	assert.Equal(t, curriculum.StatusInProgress, s.view.StatusOf("Openings"))
}

func TestStatusKeys(t *testing.T) {
	tu := newTutor(t, llm.MockResponse{Content: chessLiteral})
	s := generated(t, tu, "Chess")

	s.Update(keyPress('c'))
	assert.Contains(t, s.View(100, 30), "Rules ✅")
	s.Update(keyPress('x'))
	assert.Equal(t, curriculum.StatusToRetry, s.view.StatusOf("Rules"))
	s.Update(keyPress('u'))
	assert.Equal(t, curriculum.StatusNotStarted, s.view.StatusOf("Rules"))
}

func TestTopicCellsFollowStatus(t *testing.T) {
	tu := newTutor(t, llm.MockResponse{Content: chessLiteral})
	s := generated(t, tu, "Chess")

	_, err := tu.Select("Chess", "Endgames")
	require.NoError(t, err)
	_, err = tu.Clear("Chess")
	require.NoError(t, err)
	s.Update(screen.FocusMsg{})

	cells := topicCells(s.view)
	require.Len(t, cells, 10)
	assert.Equal(t, theme.Border, cells[0])
	assert.Equal(t, theme.Accent, cells[2])

	s.Update(keyPress('c'))
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	s.Update(keyPress('u'))

	cells = topicCells(s.view)
	assert.Equal(t, theme.Success, cells[0])
	assert.Equal(t, theme.Border, cells[1])
	assert.Equal(t, theme.Secondary, cells[2], "visited topic without a status")
}

func TestFocusRefreshesProgress(t *testing.T) {
	tu := newTutor(t, llm.MockResponse{Content: chessLiteral})
	s := generated(t, tu, "Chess")

	_, err := tu.Select("Chess", "Endgames")
	require.NoError(t, err)
	_, err = tu.Clear("Chess")
	require.NoError(t, err)

	s.Update(screen.FocusMsg{})
	assert.Equal(t, 1, s.view.VisitedCount())
	assert.Contains(t, s.View(100, 30), "Visited 1 of 10")
	assert.Equal(t, "1/10 visited", s.Progress())
}

func TestOpenExisting(t *testing.T) {
	tu := newTutor(t, llm.MockResponse{Content: chessLiteral})
	require.NoError(t, tu.RequestCurriculum(context.Background(), "Chess")().(tutor.CurriculumMsg).Err)

	s := New(tu, "Chess")
	assert.Nil(t, s.Init())
	assert.Len(t, s.view.Topics, 10)
}

func TestBackCancelsPending(t *testing.T) {
	tu := newTutor(t, llm.MockResponse{Content: chessLiteral})
	s := Generate(tu, "Chess")
	s.Init()

	cmd := s.Back()
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
	assert.False(t, s.loading)
	assert.Nil(t, s.cancel)
}
