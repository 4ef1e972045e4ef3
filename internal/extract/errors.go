package extract

import (
	"fmt"
	"unicode/utf8"
)

// maxFragmentLen caps how much of the offending model output is echoed back
// in error messages.
const maxFragmentLen = 200

// ExtractionError indicates that a model reply could not be turned into a
// curriculum. Fragment is the candidate text the parser was given.
type ExtractionError struct {
	Fragment string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract topic list: %v (fragment: %q)", e.Err, truncate(e.Fragment, maxFragmentLen))
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
