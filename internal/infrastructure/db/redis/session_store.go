package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/ports"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/pkg/randtoken"
)

const sessionIDBytes = 32

// SessionStore implements ports.SessionStore on Redis.
// Key format: session:<id>. The key's expiry is set once at creation and
// never refreshed, so the TTL is fixed rather than sliding.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

var _ ports.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) Create(ctx context.Context, ref domain.AccountRef) (*domain.Session, error) {
	id, err := randtoken.URLSafe(sessionIDBytes)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sess := domain.Session{ID: id, Account: ref, CreatedAt: now, ExpiresAt: now.Add(s.ttl)}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}

	// NX guards against the astronomically unlikely ID collision.
	ok, err := s.client.SetNX(ctx, s.key(id), payload, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("store session: id collision")
	}
	return &sess, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.AccountRef, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess.Expired(time.Now()) {
		return nil, domain.ErrSessionNotFound
	}
	return &sess.Account, nil
}

func (s *SessionStore) Destroy(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}
