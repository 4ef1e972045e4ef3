package curriculum

import (
	"errors"
	"fmt"
)

// ErrUnknownSubject is returned for a subject that has never been seeded.
var ErrUnknownSubject = errors.New("no curriculum for subject")

// ErrNoSelection is returned when navigating without a current topic.
var ErrNoSelection = errors.New("no topic selected")

// InvalidCurriculumError indicates a topic list that breaks the curriculum
// shape: wrong length, blank titles or duplicates.
type InvalidCurriculumError struct {
	Subject string
	Reason  string
}

func (e *InvalidCurriculumError) Error() string {
	return fmt.Sprintf("invalid curriculum for %q: %s", e.Subject, e.Reason)
}

// UnknownTopicError indicates a topic that is not part of the subject's
// curriculum.
type UnknownTopicError struct {
	Subject string
	Topic   string
}

func (e *UnknownTopicError) Error() string {
	return fmt.Sprintf("topic %q is not in the %q curriculum", e.Topic, e.Subject)
}

// NavigationBoundsError indicates a move past either end of the curriculum.
type NavigationBoundsError struct {
	Subject string
	From    int
	Delta   int
	Len     int
}

func (e *NavigationBoundsError) Error() string {
	return fmt.Sprintf("cannot move %+d from topic %d of %d in %q", e.Delta, e.From+1, e.Len, e.Subject)
}

// InvalidStatusError indicates a TopicStatus outside the defined values.
type InvalidStatusError struct {
	Status TopicStatus
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid topic status %d", int(e.Status))
}
