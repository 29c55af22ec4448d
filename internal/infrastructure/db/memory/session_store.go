package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/pkg/randtoken"
)

const sessionIDBytes = 32

// SessionStore implements ports.SessionStore.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]domain.Session
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]domain.Session),
	}
}

// WithClock replaces the time source, for tests.
func (s *SessionStore) WithClock(now func() time.Time) *SessionStore {
	s.now = now
	return s
}

func (s *SessionStore) Create(_ context.Context, ref domain.AccountRef) (*domain.Session, error) {
	id, err := randtoken.URLSafe(sessionIDBytes)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, k)
		}
	}

	sess := domain.Session{
		ID:        id,
		Account:   ref,
		CreatedAt: now.UTC(),
		ExpiresAt: now.Add(s.ttl).UTC(),
	}
	s.sessions[id] = sess
	return &sess, nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*domain.AccountRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	ref := sess.Account
	return &ref, nil
}

func (s *SessionStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
