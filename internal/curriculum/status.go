package curriculum

import "fmt"

// TopicStatus is the learner's progress on one topic.
type TopicStatus int

const (
	StatusNotStarted TopicStatus = iota
	StatusInProgress
	StatusCompleted
	StatusToRetry
)

var statusNames = [...]string{
	StatusNotStarted: "not_started",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
	StatusToRetry:    "to_retry",
}

// Valid reports whether s is one of the defined statuses.
func (s TopicStatus) Valid() bool {
	return s >= 0 && int(s) < len(statusNames)
}

func (s TopicStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("TopicStatus(%d)", int(s))
	}
	return statusNames[s]
}

// Icon returns the marker shown next to a topic title.
func (s TopicStatus) Icon() string {
	switch s {
	case StatusInProgress:
		return "⏳"
	case StatusCompleted:
		return "✅"
	case StatusToRetry:
		return "⚠️"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s TopicStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *TopicStatus) UnmarshalText(b []byte) error {
	st, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParseStatus parses a status name as produced by String.
func ParseStatus(name string) (TopicStatus, error) {
	for i, n := range statusNames {
		if n == name {
			return TopicStatus(i), nil
		}
	}
	return StatusNotStarted, fmt.Errorf("unknown topic status %q", name)
}
