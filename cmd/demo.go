package cmd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/tuturo/internal/extract"
	"github.com/abhisek/tuturo/internal/llm"
)

var (
	demoSubject = regexp.MustCompile(`curriculum for the ("(?:[^"\\]|\\.)*") subject`)
	demoTopic   = regexp.MustCompile(`theory on the ("(?:[^"\\]|\\.)*") topic`)
)

// demoOutline is the fixed shape of every offline curriculum.
var demoOutline = []string{
	"What Is %s?",
	"Core Vocabulary of %s",
	"A Short History of %s",
	"Key Principles of %s",
	"Tools Used in %s",
	"First Hands-On Steps in %s",
	"Common Mistakes in %s",
	"Practicing %s Every Day",
	"Real-World Uses of %s",
	"Where to Go Next with %s",
}

// demoProvider answers prompts offline so the application can be tried
// without an API key. Subjects mentioning "weapon" are refused.
func demoProvider() *llm.MockProvider {
	p := llm.NewMockProvider()
	p.Responder = demoRespond
	return p
}

func demoRespond(req llm.Request) llm.MockResponse {
	prompt := lastUserMessage(req)

	if subject, ok := quoted(demoSubject, prompt); ok {
		if strings.Contains(strings.ToLower(subject), "weapon") {
			return llm.MockResponse{Content: extract.RefusalLiteral}
		}
		items := make([]string, len(demoOutline))
		for i, f := range demoOutline {
			items[i] = strconv.Quote(fmt.Sprintf(f, subject))
		}
		return llm.MockResponse{
			Content: "[" + strings.Join(items, ", ") + "]",
			Usage:   llm.Usage{InputTokens: len(prompt) / 4, OutputTokens: 60, TotalTokens: len(prompt)/4 + 60},
		}
	}

	topic, ok := quoted(demoTopic, prompt)
	if !ok {
		topic = "this topic"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "#### Overview\n%s is introduced here in plain words. This offline text stands in for a model answer.\n\n", topic)
	fmt.Fprintf(&b, "#### Key Ideas\nEvery part of %s builds on a few simple ideas. Learn them first, then practice.\n\n", topic)
	b.WriteString("#### Conclusion\nReview the key ideas and move on to the next topic when you feel ready.")
	return llm.MockResponse{
		Content: b.String(),
		Usage:   llm.Usage{InputTokens: len(prompt) / 4, OutputTokens: 80, TotalTokens: len(prompt)/4 + 80},
	}
}

func lastUserMessage(req llm.Request) string {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == llm.RoleUser {
			return req.Messages[i].Content
		}
	}
	return ""
}

func quoted(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	v, err := strconv.Unquote(m[1])
	if err != nil {
		return "", false
	}
	return v, true
}
