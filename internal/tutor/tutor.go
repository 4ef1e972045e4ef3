// Package tutor binds one learner session to the terminal UI. Model calls
// are issued as tea.Cmds so the UI stays responsive while a curriculum or a
// theory text is generated.
package tutor

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tuturo/internal/curriculum"
	"github.com/abhisek/tuturo/internal/pathway"
	"github.com/abhisek/tuturo/internal/session"
	"github.com/abhisek/tuturo/internal/store"
)

// CurriculumMsg carries the outcome of a curriculum request.
type CurriculumMsg struct {
	Subject string
	Outcome pathway.Outcome
	Err     error
}

// TheoryMsg carries the theory text for one topic.
type TheoryMsg struct {
	Subject string
	Topic   string
	Text    string
	Err     error
}

// Tutor is the UI's handle on the learning path of a single session.
// Store access goes through the session lock; screens must not issue store
// actions while one of their commands is in flight.
type Tutor struct {
	svc    *pathway.Service
	sess   *session.Session
	events store.EventRepo
}

// New creates a Tutor. events may be nil when no audit log is open.
func New(svc *pathway.Service, sess *session.Session, events store.EventRepo) *Tutor {
	return &Tutor{svc: svc, sess: sess, events: events}
}

// SessionID returns the ID recorded with curriculum events.
func (t *Tutor) SessionID() string {
	return t.sess.ID
}

// ModelID returns the model serving the session.
func (t *Tutor) ModelID() string {
	return t.svc.ModelID()
}

// Events returns the audit log, or nil.
func (t *Tutor) Events() store.EventRepo {
	return t.events
}

// Profile returns a copy of the learner profile.
func (t *Tutor) Profile() curriculum.Profile {
	return t.sess.Info().Profile
}

// Answer merges questionnaire answers into the profile.
func (t *Tutor) Answer(p curriculum.Profile) {
	t.sess.SetProfile(p)
}

// Subjects lists the subjects with a curriculum in the order they were
// first generated.
func (t *Tutor) Subjects() []string {
	return t.sess.Info().Subjects
}

// RequestCurriculum generates a curriculum for subject in the background.
// Canceling ctx abandons the model call.
func (t *Tutor) RequestCurriculum(ctx context.Context, subject string) tea.Cmd {
	ctx = pathway.WithSession(ctx, t.sess.ID)
	return func() tea.Msg {
		var out pathway.Outcome
		err := t.sess.Do(func(st *curriculum.Store, profile curriculum.Profile) error {
			var err error
			out, err = t.svc.RequestCurriculum(ctx, st, profile, subject)
			return err
		})
		return CurriculumMsg{Subject: subject, Outcome: out, Err: err}
	}
}

// RequestTheory returns the theory text for topic, generating it on first
// use.
func (t *Tutor) RequestTheory(ctx context.Context, subject, topic string) tea.Cmd {
	ctx = pathway.WithSession(ctx, t.sess.ID)
	return func() tea.Msg {
		var text string
		err := t.sess.Do(func(st *curriculum.Store, profile curriculum.Profile) error {
			var err error
			text, err = t.svc.RequestTheory(ctx, st, profile, subject, topic)
			return err
		})
		return TheoryMsg{Subject: subject, Topic: topic, Text: text, Err: err}
	}
}

// View returns the current state of subject's curriculum.
func (t *Tutor) View(subject string) (curriculum.View, error) {
	return t.apply(func(st *curriculum.Store) (curriculum.View, error) {
		return st.Get(subject)
	})
}

// Select makes topic the current topic.
func (t *Tutor) Select(subject, topic string) (curriculum.View, error) {
	return t.apply(func(st *curriculum.Store) (curriculum.View, error) {
		return st.SelectTopic(subject, topic)
	})
}

// Advance moves delta topics from the current one.
func (t *Tutor) Advance(subject string, delta int) (curriculum.View, error) {
	return t.apply(func(st *curriculum.Store) (curriculum.View, error) {
		return st.Advance(subject, delta)
	})
}

// Clear returns to the overview, keeping progress.
func (t *Tutor) Clear(subject string) (curriculum.View, error) {
	return t.apply(func(st *curriculum.Store) (curriculum.View, error) {
		return st.ClearSelection(subject)
	})
}

// SetStatus records the learner's progress on topic.
func (t *Tutor) SetStatus(subject, topic string, status curriculum.TopicStatus) (curriculum.View, error) {
	return t.apply(func(st *curriculum.Store) (curriculum.View, error) {
		return st.SetStatus(subject, topic, status)
	})
}

func (t *Tutor) apply(op func(st *curriculum.Store) (curriculum.View, error)) (curriculum.View, error) {
	var v curriculum.View
	err := t.sess.Do(func(st *curriculum.Store, _ curriculum.Profile) error {
		var err error
		v, err = op(st)
		return err
	})
	return v, err
}
