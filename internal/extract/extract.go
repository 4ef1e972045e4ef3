// Package extract turns raw model completions into validated data: a
// curriculum of exactly TopicCount titles, the refusal sentinel, or plain
// theory text.
package extract

import (
	"regexp"
	"strings"
)

// RefusalText is the single element a model returns when it declines to
// build a curriculum for a subject.
const RefusalText = "Sorry, I can NOT generate harmful learning content"

// RefusalLiteral is RefusalText written as the list literal prompts ask for.
const RefusalLiteral = "['" + RefusalText + "']"

const fence = "```"

var (
	assignedList = regexp.MustCompile(`=\s*\[`)
	anyList      = regexp.MustCompile(`(?s)\[.*\]`)
	languageTag  = regexp.MustCompile(`^[A-Za-z0-9_+\-.#]+[ \t]*(\n|$)`)
)

// Result is a successfully extracted curriculum reply. Exactly one of
// Topics or Refused is meaningful.
type Result struct {
	Topics  []string
	Refused bool
}

// TopicList extracts a curriculum from a raw completion. Failures are
// returned as *ExtractionError; the list is never trimmed or padded.
func TopicList(raw string) (Result, error) {
	candidate := locateList(stripFence(raw))

	v, err := ParseLiteral(candidate)
	if err != nil {
		return Result{}, &ExtractionError{Fragment: candidate, Err: err}
	}

	if isRefusal(v) {
		return Result{Refused: true}, nil
	}

	topics, err := validateTopics(v)
	if err != nil {
		return Result{}, &ExtractionError{Fragment: candidate, Err: err}
	}
	return Result{Topics: topics}, nil
}

// TheoryText returns the theory body of a completion.
func TheoryText(raw string) string {
	return strings.TrimSpace(raw)
}

// stripFence returns the contents of the first fenced block when one is
// present, without its language tag line. Unfenced text is only trimmed.
func stripFence(raw string) string {
	if !strings.Contains(raw, fence) {
		return strings.TrimSpace(raw)
	}
	parts := strings.SplitN(raw, fence, 3)
	block := parts[1]

	if loc := languageTag.FindStringIndex(block); loc != nil {
		line := block[:loc[1]]
		if !strings.Contains(line, "[") {
			block = block[loc[1]:]
		}
	}
	return strings.TrimSpace(block)
}

// locateList narrows text to the bracketed list it carries. Each '[' is
// tried as the start of a literal and only the parsed span is kept, so
// brackets in surrounding prose do not widen the match. Lists assigned to a
// name are tried first and a list of strings wins over any other literal.
// When nothing parses, the widest bracketed span is returned so the error
// shows it.
func locateList(text string) string {
	var assigned []int
	for _, loc := range assignedList.FindAllStringIndex(text, -1) {
		assigned = append(assigned, loc[1]-1)
	}

	var fallback string
	try := func(start int) (string, bool) {
		v, size, err := parseLiteralPrefix(text[start:])
		if err != nil {
			return "", false
		}
		span := text[start : start+size]
		if isStringList(v) {
			return span, true
		}
		if fallback == "" {
			fallback = span
		}
		return span, false
	}

	for _, start := range assigned {
		if span, ok := try(start); ok {
			return span
		}
	}
	for start := 0; start < len(text); start++ {
		if text[start] != '[' {
			continue
		}
		span, ok := try(start)
		if ok {
			return span
		}
		if span != "" {
			// Lists nested in a literal that already parsed are not candidates.
			start += len(span) - 1
		}
	}

	if fallback != "" {
		return fallback
	}
	if m := anyList.FindString(text); m != "" {
		return m
	}
	return text
}

func isStringList(v any) bool {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return false
	}
	for _, item := range items {
		if _, ok := item.(string); !ok {
			return false
		}
	}
	return true
}

func isRefusal(v any) bool {
	items, ok := v.([]any)
	if !ok || len(items) != 1 {
		return false
	}
	s, ok := items[0].(string)
	return ok && s == RefusalText
}
