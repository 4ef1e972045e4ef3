package curriculum

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/tuturo/internal/extract"
	"github.com/abhisek/tuturo/internal/llm"
)

const designerRole = `You are an experienced Instructional Designer with expertise across many subjects and disciplines.`

// CurriculumPrompt builds the messages that ask for a ten-topic curriculum
// for subject, tailored to the learner's profile.
func CurriculumPrompt(profile Profile, subject string) []llm.Message {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		profileJSON = []byte("{}")
	}

	var sys strings.Builder
	sys.WriteString(designerRole)
	sys.WriteString("\n")
	sys.WriteString(fmt.Sprintf("If you identify the subject %q as HARMFUL or INAPPROPRIATE you MUST output %s and IMMEDIATELY STOP.\n", subject, extract.RefusalLiteral))
	sys.WriteString(fmt.Sprintf("If the subject %q is acceptable, your MAIN objective is to generate a learning path of TOPIC TITLES for a learner with this profile: %s\n", subject, profileJSON))

	goal := profile.Get(KeyPrimaryGoal)
	level := profile.Get(KeyKnowledgeLevel)

	var user strings.Builder
	user.WriteString(fmt.Sprintf("Generate a list of strings representing a sequential learning curriculum for the %q subject, STRICTLY FOLLOWING these rules:\n", subject))
	user.WriteString(fmt.Sprintf("1. If you identify the subject %q as HARMFUL or INAPPROPRIATE, you MUST output %s and IMMEDIATELY STOP.\n", subject, extract.RefusalLiteral))
	user.WriteString(fmt.Sprintf("2. The FIRST item MUST be a foundational topic of the %q subject.\n", subject))
	user.WriteString("3. Subsequent items MUST follow a LOGICAL and STRUCTURED order that forms a smooth learning progression.\n")
	user.WriteString(fmt.Sprintf("   3.1 Items MUST be relevant to the learner's %q learning goal and %q knowledge level.\n", goal, level))
	user.WriteString("   3.2 There MUST be NO duplicate topics.\n")
	user.WriteString("4. Items MUST ONLY be topic TITLES, without descriptions or any additional text.\n")
	user.WriteString(fmt.Sprintf("5. The list MUST have exactly %d items (NO MORE, NO LESS).\n", TopicCount))
	user.WriteString(fmt.Sprintf("6. Output MUST STRICTLY be a list literal of %d strings like ['Topic 1', 'Topic 2', ...] WITHOUT any variable assignment in front.", TopicCount))

	return []llm.Message{
		{Role: llm.RoleSystem, Content: sys.String()},
		{Role: llm.RoleUser, Content: user.String()},
	}
}

// TheoryLayout is the shape requested for a topic's theory.
type TheoryLayout struct {
	Sections        int
	LinesPerSection string
}

// LayoutFor maps the learner's daily study time to a theory layout.
func LayoutFor(studyTime string) TheoryLayout {
	switch studyTime {
	case "Less than 30 minutes", "30 minutes to 1 hour":
		return TheoryLayout{Sections: 2, LinesPerSection: "2 lines"}
	case "1 to 2 hours":
		return TheoryLayout{Sections: 4, LinesPerSection: "4-5 lines"}
	default:
		return TheoryLayout{Sections: 5, LinesPerSection: "about 6-7 lines"}
	}
}

// TheoryPrompt builds the messages that ask for theory on topic.
func TheoryPrompt(profile Profile, topic string) []llm.Message {
	layout := LayoutFor(profile.Get(KeyStudyTimePerDay))

	sys := fmt.Sprintf("%s\nYour MAIN objective is to generate COMPREHENSIVE but CONCISE theory for the topic %q.", designerRole, topic)

	var user strings.Builder
	user.WriteString(fmt.Sprintf("Create structured theory on the %q topic, organized into sections, STRICTLY FOLLOWING these rules:\n", topic))
	user.WriteString(fmt.Sprintf("1. The theory MUST stay FOCUSED on the %q topic.\n", topic))
	user.WriteString(fmt.Sprintf("2. The theory MUST have %d sections, each with a heading written as an h4 markdown heading (####), in a LOGICAL order.\n", layout.Sections))
	user.WriteString("   2.1 Do NOT write 'Title:', 'Section 1:' or similar before section headings. Output the heading DIRECTLY.\n")
	user.WriteString(fmt.Sprintf("   2.2 Each section MUST have only %s of text.\n", layout.LinesPerSection))
	user.WriteString("3. Each section MUST be COMPREHENSIVE yet CONCISE, without filler.\n")
	user.WriteString("   3.1 Each section MUST transition smoothly from the previous one.\n")
	user.WriteString("4. The final section MUST be \"Conclusion\", recapping the main points.\n")
	user.WriteString(fmt.Sprintf("5. Use clear language suitable for someone new to %q.\n", topic))
	user.WriteString("6. Use simple words and AVOID advanced vocabulary or formal expressions.\n")
	user.WriteString("7. Output ONLY the theory, with NO remarks, chatty messages or meta-text.")

	return []llm.Message{
		{Role: llm.RoleSystem, Content: sys},
		{Role: llm.RoleUser, Content: user.String()},
	}
}
