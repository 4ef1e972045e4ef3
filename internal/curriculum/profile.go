package curriculum

import (
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile keys read by the prompt builders. The remaining onboarding answers
// are passed through to the model verbatim.
const (
	KeyPrimaryGoal     = "primary_goal"
	KeyKnowledgeLevel  = "knowledge_level"
	KeyStudyTimePerDay = "study_time_per_day"

	KeyAgeGroup                   = "age_group"
	KeyEducationalBackground      = "educational_background"
	KeyPreferredLearningResources = "preferred_learning_resources"
)

// Profile holds a learner's onboarding answers keyed by question.
type Profile map[string]string

// Get returns the answer for key, or "" when unanswered.
func (p Profile) Get(key string) string {
	return p[key]
}

// Clone returns an independent copy of p.
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	maps.Copy(out, p)
	return out
}

// Merge returns a copy of p with the non-empty answers of other applied on
// top.
func (p Profile) Merge(other Profile) Profile {
	out := p.Clone()
	for k, v := range other {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// DefaultProfile is used when no onboarding answers have been configured.
func DefaultProfile() Profile {
	return Profile{
		KeyAgeGroup:                   "18-35",
		KeyEducationalBackground:      "Bachelor's degree",
		KeyPreferredLearningResources: "Text content (theory topics)",
		KeyPrimaryGoal:                "Personal interest",
		KeyKnowledgeLevel:             "Beginner",
		KeyStudyTimePerDay:            "30 minutes to 1 hour",
	}
}

// LoadProfile reads onboarding answers from a YAML mapping file.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if p == nil {
		p = Profile{}
	}
	return p, nil
}

// Question is one onboarding question and its preset answers.
type Question struct {
	Key     string
	Prompt  string
	Options []string
}

// OnboardingQuestions are asked once per learner.
var OnboardingQuestions = []Question{
	{KeyAgeGroup, "What is your age group?", []string{"Under 18", "18-35", "36-50", "51 or older"}},
	{KeyEducationalBackground, "What is your educational background?", []string{"High school", "Bachelor's degree", "Master's degree", "Doctorate or higher"}},
	{KeyPreferredLearningResources, "What type of learning resources do you prefer?", []string{"Text content (theory topics)", "Video content (videos, info-graphics)", "Interactive content (quizzes, tests)", "All mentioned before"}},
}

// PathQuestions are asked each time a curriculum is requested.
var PathQuestions = []Question{
	{KeyPrimaryGoal, "What is your primary learning goal?", []string{"Personal interest", "Professional development", "Curiosity"}},
	{KeyKnowledgeLevel, "How well do you know this subject already?", []string{"Beginner", "Intermediate", "Advanced"}},
	{KeyStudyTimePerDay, "How much time do you want to study per day?", []string{"Less than 30 minutes", "30 minutes to 1 hour", "1 to 2 hours", "More than 2 hours"}},
}

// OtherSubject is the preset entry that asks for a free-text subject.
const OtherSubject = "Other (please specify)"

// PresetSubjects are offered before the free-text option.
var PresetSubjects = []string{
	"House Plants", "Product Management", "Math", "History", "Languages",
	"Science", "Geography", "Computer Science", "Business", "Art", "P.E.",
	"Literature", "Music", "Self-improvement", "Health", "Psychology",
	"Technology", "Creativity", "Social Sciences",
}
