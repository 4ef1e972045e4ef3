package curriculum

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tuturo/internal/extract"
	"github.com/abhisek/tuturo/internal/llm"
)

func TestCurriculumPrompt(t *testing.T) {
	profile := Profile{
		KeyPrimaryGoal:    "Professional development",
		KeyKnowledgeLevel: "Intermediate",
		KeyAgeGroup:       "36-50",
	}
	msgs := CurriculumPrompt(profile, "Product Management")
	require.Len(t, msgs, 2)

	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, extract.RefusalLiteral)
	assert.Contains(t, msgs[0].Content, `"age_group":"36-50"`)
	assert.Contains(t, msgs[0].Content, `"Product Management"`)

	assert.Equal(t, llm.RoleUser, msgs[1].Role)
	user := msgs[1].Content
	assert.Contains(t, user, extract.RefusalLiteral)
	assert.Contains(t, user, "exactly 10 items")
	assert.Contains(t, user, `"Professional development" learning goal`)
	assert.Contains(t, user, `"Intermediate" knowledge level`)
	assert.Contains(t, user, "NO duplicate")
	assert.Contains(t, user, "WITHOUT any variable assignment")
}

func TestLayoutFor(t *testing.T) {
	cases := map[string]TheoryLayout{
		"Less than 30 minutes": {2, "2 lines"},
		"30 minutes to 1 hour": {2, "2 lines"},
		"1 to 2 hours":         {4, "4-5 lines"},
		"More than 2 hours":    {5, "about 6-7 lines"},
		"":                     {5, "about 6-7 lines"},
	}
	for studyTime, want := range cases {
		assert.Equal(t, want, LayoutFor(studyTime), "study time %q", studyTime)
	}
}

func TestTheoryPrompt(t *testing.T) {
	msgs := TheoryPrompt(Profile{KeyStudyTimePerDay: "1 to 2 hours"}, "The Roman Empire")
	require.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, `"The Roman Empire"`)

	user := msgs[1].Content
	assert.Contains(t, user, "MUST have 4 sections")
	assert.Contains(t, user, "only 4-5 lines of text")
	assert.Contains(t, user, "h4 markdown heading")
	assert.Contains(t, user, `"Conclusion"`)
	assert.Contains(t, user, "'Section 1:'")
}

func TestTheoryPrompt_UnsetStudyTime(t *testing.T) {
	msgs := TheoryPrompt(Profile{}, "Photosynthesis")
	assert.True(t, strings.Contains(msgs[1].Content, "MUST have 5 sections"))
}

func TestProfile_CloneAndMerge(t *testing.T) {
	p := Profile{KeyPrimaryGoal: "Curiosity"}
	c := p.Clone()
	c[KeyPrimaryGoal] = "changed"
	assert.Equal(t, "Curiosity", p.Get(KeyPrimaryGoal))

	merged := DefaultProfile().Merge(Profile{KeyKnowledgeLevel: "Advanced", KeyPrimaryGoal: ""})
	assert.Equal(t, "Advanced", merged.Get(KeyKnowledgeLevel))
	assert.Equal(t, "Personal interest", merged.Get(KeyPrimaryGoal))
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("primary_goal: Curiosity\nstudy_time_per_day: 1 to 2 hours\n"), 0o600))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Curiosity", p.Get(KeyPrimaryGoal))
	assert.Equal(t, "1 to 2 hours", p.Get(KeyStudyTimePerDay))

	_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTopicStatus_Text(t *testing.T) {
	for _, s := range []TopicStatus{StatusNotStarted, StatusInProgress, StatusCompleted, StatusToRetry} {
		b, err := s.MarshalText()
		require.NoError(t, err)
		var back TopicStatus
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, s, back)
	}
	_, err := ParseStatus("done")
	assert.Error(t, err)
	assert.Equal(t, "⚠️", StatusToRetry.Icon())
}
