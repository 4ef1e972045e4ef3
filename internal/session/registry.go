package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/tuturo/internal/curriculum"
)

// DefaultCapacity is the number of sessions kept before the least recently
// used one is evicted.
const DefaultCapacity = 1024

// ErrUnknownSession is returned for IDs that were never issued or have been
// evicted.
var ErrUnknownSession = errors.New("unknown session")

// Registry is a bounded, concurrency-safe set of sessions keyed by ID.
type Registry struct {
	cache  *lru.Cache[string, *Session]
	logger logrus.FieldLogger
}

// NewRegistry creates a registry holding at most capacity sessions. A nil
// logger discards eviction logs.
func NewRegistry(capacity int, logger logrus.FieldLogger) (*Registry, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	r := &Registry{logger: logger}
	cache, err := lru.NewWithEvict(capacity, r.onEvict)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	r.cache = cache
	return r, nil
}

func (r *Registry) onEvict(id string, s *Session) {
	r.logger.WithFields(logrus.Fields{
		"session": id,
		"created": s.CreatedAt,
	}).Info("session evicted")
}

// Create starts a new session with the given profile. Unanswered profile
// keys fall back to curriculum.DefaultProfile.
func (r *Registry) Create(profile curriculum.Profile) *Session {
	s := newSession(uuid.NewString(), curriculum.DefaultProfile().Merge(profile))
	r.cache.Add(s.ID, s)
	r.logger.WithField("session", s.ID).Debug("session created")
	return s
}

// Get returns the session with id and marks it recently used.
func (r *Registry) Get(id string) (*Session, error) {
	s, ok := r.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSession, id)
	}
	return s, nil
}

// Remove drops the session with id. It reports whether it existed.
func (r *Registry) Remove(id string) bool {
	return r.cache.Remove(id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.cache.Len()
}
