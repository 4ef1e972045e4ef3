// Package pathway turns a subject and a learner profile into a curriculum
// and per-topic theory by prompting a model, validating what comes back and
// recording the result in a curriculum.Store.
package pathway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/tuturo/internal/curriculum"
	"github.com/abhisek/tuturo/internal/extract"
	"github.com/abhisek/tuturo/internal/llm"
	"github.com/abhisek/tuturo/internal/store"
)

// RefusalMessage is shown to the learner when the model declines a subject.
// Refusals are not cached, so asking again issues a fresh request.
const RefusalMessage = "Sorry, this subject cannot be turned into a learning path. " +
	"Please try a different subject, or ask again if you think this is a mistake."

// ErrEmptySubject is returned when a curriculum is requested for a blank
// subject.
var ErrEmptySubject = errors.New("subject must not be empty")

// Recorder receives one event per curriculum request outcome.
// store.EventRepo satisfies it.
type Recorder interface {
	AppendCurriculumEvent(ctx context.Context, data store.CurriculumEventData) error
}

// Outcome is the result of a curriculum request. A refusal is an outcome,
// not an error; View is only meaningful when Refused is false.
type Outcome struct {
	Refused bool
	View    curriculum.View
}

// Topics returns the generated topics, or nil for a refusal.
func (o Outcome) Topics() []string {
	if o.Refused {
		return nil
	}
	return o.View.Topics
}

// Service generates curricula and theory text.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   logrus.FieldLogger
	recorder Recorder
}

// NewService creates a learning path service. A nil logger discards logs.
func NewService(provider llm.Provider, cfg Config, logger logrus.FieldLogger) *Service {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Service{provider: provider, cfg: cfg, logger: logger}
}

// ModelID reports the model behind the service.
func (s *Service) ModelID() string {
	return s.provider.ModelID()
}

// SetRecorder attaches an audit recorder for curriculum outcomes.
func (s *Service) SetRecorder(r Recorder) {
	s.recorder = r
}

// RequestCurriculum asks the model for a curriculum of subject tailored to
// profile and seeds st with it. A refusal leaves st untouched. Extraction
// failures are returned unchanged as *extract.ExtractionError.
func (s *Service) RequestCurriculum(ctx context.Context, st *curriculum.Store, profile curriculum.Profile, subject string) (Outcome, error) {
	if strings.TrimSpace(subject) == "" {
		return Outcome{}, ErrEmptySubject
	}

	log := s.logger.WithField("subject", subject)
	ctx = llm.WithLabels(ctx, llm.Labels{Purpose: PurposeCurriculum, Subject: subject})

	resp, err := s.provider.Generate(ctx, llm.Request{
		Messages:    curriculum.CurriculumPrompt(profile.Clone(), subject),
		MaxTokens:   s.cfg.CurriculumMaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		s.record(ctx, subject, store.ActionFailed, nil, err.Error())
		return Outcome{}, fmt.Errorf("curriculum generation: %w", err)
	}

	res, err := extract.TopicList(resp.Content)
	if err != nil {
		log.WithError(err).Warn("curriculum response rejected")
		s.record(ctx, subject, store.ActionFailed, nil, err.Error())
		return Outcome{}, err
	}

	if res.Refused {
		log.Info("curriculum request refused by model")
		s.record(ctx, subject, store.ActionRefused, nil, "")
		return Outcome{Refused: true}, nil
	}

	view, err := st.Seed(subject, res.Topics)
	if err != nil {
		s.record(ctx, subject, store.ActionFailed, res.Topics, err.Error())
		return Outcome{}, err
	}

	log.WithField("topics", len(view.Topics)).Debug("curriculum generated")
	s.record(ctx, subject, store.ActionGenerated, view.Topics, "")
	return Outcome{View: view}, nil
}

// RequestTheory returns the theory text for topic, generating it on the
// first request and serving the cached copy afterwards.
func (s *Service) RequestTheory(ctx context.Context, st *curriculum.Store, profile curriculum.Profile, subject, topic string) (string, error) {
	profile = profile.Clone()
	return st.Theory(subject, topic, func() (string, error) {
		ctx := llm.WithLabels(ctx, llm.Labels{Purpose: PurposeTheory, Subject: subject})
		resp, err := s.provider.Generate(ctx, llm.Request{
			Messages:    curriculum.TheoryPrompt(profile, topic),
			MaxTokens:   s.cfg.TheoryMaxTokens,
			Temperature: s.cfg.Temperature,
		})
		if err != nil {
			return "", fmt.Errorf("theory generation for %q: %w", topic, err)
		}
		s.logger.WithFields(logrus.Fields{"subject": subject, "topic": topic}).Debug("theory generated")
		return extract.TheoryText(resp.Content), nil
	})
}

func (s *Service) record(ctx context.Context, subject, action string, topics []string, detail string) {
	if s.recorder == nil {
		return
	}
	err := s.recorder.AppendCurriculumEvent(context.WithoutCancel(ctx), store.CurriculumEventData{
		SessionID: SessionFrom(ctx),
		Subject:   subject,
		Action:    action,
		Topics:    topics,
		Detail:    detail,
	})
	if err != nil {
		s.logger.WithError(err).Warn("failed to record curriculum event")
	}
}
