// Package curriculum tracks a learner's progress through per-subject
// curricula and builds the prompts that produce them.
package curriculum

import (
	"fmt"
	"strings"

	"github.com/abhisek/tuturo/internal/extract"
)

// TopicCount is the number of topics in every curriculum.
const TopicCount = extract.TopicCount

// state is the progression through one subject's curriculum.
type state struct {
	topics   []string
	position map[string]int

	current  int
	selected bool

	visited map[string]struct{}
	status  map[string]TopicStatus
	theory  map[string]string
}

// Store holds the curricula of a single learner keyed by subject. It is not
// safe for concurrent use; callers serialize access per learner.
type Store struct {
	states map[string]*state
	order  []string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{states: make(map[string]*state)}
}

// Seed replaces the subject's curriculum with topics, resetting selection,
// visited topics, statuses and cached theory.
func (s *Store) Seed(subject string, topics []string) (View, error) {
	if err := validateTopics(subject, topics); err != nil {
		return View{}, err
	}

	st := &state{
		topics:   append([]string(nil), topics...),
		position: make(map[string]int, len(topics)),
		visited:  make(map[string]struct{}),
		status:   make(map[string]TopicStatus),
		theory:   make(map[string]string),
	}
	for i, t := range st.topics {
		st.position[t] = i
	}

	if _, ok := s.states[subject]; !ok {
		s.order = append(s.order, subject)
	}
	s.states[subject] = st
	return st.view(subject), nil
}

func validateTopics(subject string, topics []string) error {
	if len(topics) != TopicCount {
		return &InvalidCurriculumError{Subject: subject, Reason: fmt.Sprintf("want %d topics, got %d", TopicCount, len(topics))}
	}
	seen := make(map[string]struct{}, len(topics))
	for i, t := range topics {
		if strings.TrimSpace(t) == "" {
			return &InvalidCurriculumError{Subject: subject, Reason: fmt.Sprintf("topic %d is blank", i+1)}
		}
		if _, dup := seen[t]; dup {
			return &InvalidCurriculumError{Subject: subject, Reason: fmt.Sprintf("duplicate topic %q", t)}
		}
		seen[t] = struct{}{}
	}
	return nil
}

// Get returns a snapshot of the subject's curriculum.
func (s *Store) Get(subject string) (View, error) {
	st, err := s.lookup(subject)
	if err != nil {
		return View{}, err
	}
	return st.view(subject), nil
}

// Subjects returns the seeded subjects in the order they were first seeded.
func (s *Store) Subjects() []string {
	return append([]string(nil), s.order...)
}

// SelectTopic makes topic the current one, marking it visited and in
// progress.
func (s *Store) SelectTopic(subject, topic string) (View, error) {
	st, err := s.lookup(subject)
	if err != nil {
		return View{}, err
	}
	idx, ok := st.position[topic]
	if !ok {
		return View{}, &UnknownTopicError{Subject: subject, Topic: topic}
	}

	st.current = idx
	st.selected = true
	st.visited[topic] = struct{}{}
	st.status[topic] = StatusInProgress
	return st.view(subject), nil
}

// Advance moves the selection by delta topics. A move past either end fails
// with *NavigationBoundsError and leaves the state unchanged. The topic moved
// to is marked visited and, when not yet started, in progress.
func (s *Store) Advance(subject string, delta int) (View, error) {
	st, err := s.lookup(subject)
	if err != nil {
		return View{}, err
	}
	if !st.selected {
		return View{}, fmt.Errorf("advance %q: %w", subject, ErrNoSelection)
	}

	next := st.current + delta
	if next < 0 || next >= len(st.topics) {
		return View{}, &NavigationBoundsError{Subject: subject, From: st.current, Delta: delta, Len: len(st.topics)}
	}

	st.current = next
	topic := st.topics[next]
	st.visited[topic] = struct{}{}
	if _, started := st.status[topic]; !started {
		st.status[topic] = StatusInProgress
	}
	return st.view(subject), nil
}

// ClearSelection returns to the overview. Progress is kept.
func (s *Store) ClearSelection(subject string) (View, error) {
	st, err := s.lookup(subject)
	if err != nil {
		return View{}, err
	}
	st.current = 0
	st.selected = false
	return st.view(subject), nil
}

// SetStatus records a status for topic. Setting StatusNotStarted clears it.
// Values outside the defined statuses fail with *InvalidStatusError.
func (s *Store) SetStatus(subject, topic string, status TopicStatus) (View, error) {
	if !status.Valid() {
		return View{}, &InvalidStatusError{Status: status}
	}
	st, err := s.lookup(subject)
	if err != nil {
		return View{}, err
	}
	if _, ok := st.position[topic]; !ok {
		return View{}, &UnknownTopicError{Subject: subject, Topic: topic}
	}
	if status == StatusNotStarted {
		delete(st.status, topic)
	} else {
		st.status[topic] = status
	}
	return st.view(subject), nil
}

// Theory returns the cached theory for topic, calling generate to produce it
// on first use. A failed generation is not cached.
func (s *Store) Theory(subject, topic string, generate func() (string, error)) (string, error) {
	st, err := s.lookup(subject)
	if err != nil {
		return "", err
	}
	if _, ok := st.position[topic]; !ok {
		return "", &UnknownTopicError{Subject: subject, Topic: topic}
	}
	if text, ok := st.theory[topic]; ok {
		return text, nil
	}

	text, err := generate()
	if err != nil {
		return "", err
	}
	st.theory[topic] = text
	return text, nil
}

func (s *Store) lookup(subject string) (*state, error) {
	st, ok := s.states[subject]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSubject, subject)
	}
	return st, nil
}
