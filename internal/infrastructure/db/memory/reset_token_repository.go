package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/pkg/randtoken"
)

const resetTokenBytes = 32

// ResetTokenRepository implements ports.ResetTokenRepository. Expired tokens
// are dropped when touched and swept on every Issue.
type ResetTokenRepository struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	tokens map[string]domain.ResetToken
}

func NewResetTokenRepository(ttl time.Duration) *ResetTokenRepository {
	return &ResetTokenRepository{
		ttl:    ttl,
		now:    time.Now,
		tokens: make(map[string]domain.ResetToken),
	}
}

// WithClock replaces the time source, for tests.
func (r *ResetTokenRepository) WithClock(now func() time.Time) *ResetTokenRepository {
	r.now = now
	return r
}

func (r *ResetTokenRepository) Issue(_ context.Context, accountID string) (*domain.ResetToken, error) {
	token, err := randtoken.Hex(resetTokenBytes)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	t := domain.ResetToken{Token: token, AccountID: accountID, CreatedAt: now.UTC()}
	r.tokens[token] = t
	return &t, nil
}

func (r *ResetTokenRepository) FindByToken(_ context.Context, token string) (*domain.ResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.liveLocked(token)
	if !ok {
		return nil, domain.ErrResetTokenNotFound
	}
	return &t, nil
}

func (r *ResetTokenRepository) Consume(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.liveLocked(token); !ok {
		return domain.ErrResetTokenNotFound
	}
	delete(r.tokens, token)
	return nil
}

func (r *ResetTokenRepository) Restore(_ context.Context, token *domain.ResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.Token] = *token
	return nil
}

// Len counts stored tokens, live or not yet swept.
func (r *ResetTokenRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

func (r *ResetTokenRepository) liveLocked(token string) (domain.ResetToken, bool) {
	t, ok := r.tokens[token]
	if !ok {
		return domain.ResetToken{}, false
	}
	if t.Expired(r.now(), r.ttl) {
		delete(r.tokens, token)
		return domain.ResetToken{}, false
	}
	return t, true
}

func (r *ResetTokenRepository) sweepLocked(now time.Time) {
	for k, t := range r.tokens {
		if t.Expired(now, r.ttl) {
			delete(r.tokens, k)
		}
	}
}
