package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"tripplanner/session"
)

var ErrSessionNotFound = errors.New("session not found")

// ─── Store ────────────────────────────────────────────────────────────────────

// SessionStore keeps planner sessions in memory. Entries expire after the
// configured TTL of inactivity; nothing is written to disk.
type SessionStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewSessionStore(ttl, cleanupInterval time.Duration) *SessionStore {
	return &SessionStore{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// ─── CRUD ─────────────────────────────────────────────────────────────────────

// Create starts a new session in the home state.
func (s *SessionStore) Create() *session.Session {
	sess := session.New(uuid.New().String())
	s.cache.Set(sess.ID(), sess, s.ttl)
	return sess
}

// Get returns the session and extends its lifetime. The refresh uses
// Replace, which fails once the entry is gone, so a concurrent Delete is
// never undone.
func (s *SessionStore) Get(id string) (*session.Session, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess := v.(*session.Session)
	if err := s.cache.Replace(id, sess, s.ttl); err != nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(id string) error {
	if _, ok := s.cache.Get(id); !ok {
		return ErrSessionNotFound
	}
	s.cache.Delete(id)
	return nil
}

// Count includes sessions that have expired but not yet been cleaned up.
func (s *SessionStore) Count() int {
	return s.cache.ItemCount()
}
