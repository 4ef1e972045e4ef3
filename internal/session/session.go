// Package session keeps one curriculum store per learner session for hosts
// that serve many learners at once.
package session

import (
	"sync"
	"time"

	"github.com/abhisek/tuturo/internal/curriculum"
)

// Session is one learner's curricula and profile. All access to the store
// goes through Do, which serializes actions of the same session.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	profile curriculum.Profile
	store   *curriculum.Store
}

// Info is a point-in-time summary of a session.
type Info struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Profile   curriculum.Profile `json:"profile"`
	Subjects  []string           `json:"subjects"`
}

func newSession(id string, profile curriculum.Profile) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		profile:   profile.Clone(),
		store:     curriculum.NewStore(),
	}
}

// Do runs fn with exclusive access to the session's store. fn receives a
// copy of the profile.
func (s *Session) Do(fn func(st *curriculum.Store, profile curriculum.Profile) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.store, s.profile.Clone())
}

// SetProfile merges the non-empty answers of p into the session profile.
func (s *Session) SetProfile(p curriculum.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = s.profile.Merge(p)
}

// Info returns a summary of the session.
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Profile:   s.profile.Clone(),
		Subjects:  s.store.Subjects(),
	}
}
