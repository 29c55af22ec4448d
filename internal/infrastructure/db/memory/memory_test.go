package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(1_700_000_000, 0)} }

func (f *fakeClock) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func account(username, email, phone string) *domain.Account {
	return &domain.Account{
		Username:     username,
		Email:        email,
		Phone:        phone,
		Gender:       domain.GenderOther,
		PasswordHash: "hash",
	}
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	created, err := repo.Create(ctx, account("alice", "Alice@X.com", "+15551234567"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected ID to be assigned")
	}
	if created.Email != "alice@x.com" {
		t.Fatalf("expected lowercased email, got %s", created.Email)
	}

	byEmail, err := repo.FindByEmail(ctx, "ALICE@x.COM")
	if err != nil || byEmail.ID != created.ID {
		t.Fatalf("FindByEmail case-insensitive failed: %v %+v", err, byEmail)
	}
	if _, err := repo.FindByUsername(ctx, "alice"); err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if _, err := repo.FindByPhone(ctx, "+15551234567"); err != nil {
		t.Fatalf("FindByPhone: %v", err)
	}
	if _, err := repo.FindByUsername(ctx, "bob"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountRepository_DuplicateFields(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()
	if _, err := repo.Create(ctx, account("alice", "a@x.com", "+15551234567")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	cases := []struct {
		acc   *domain.Account
		field string
	}{
		{account("alice", "b@x.com", "+15550000000"), domain.FieldUsername},
		{account("bob", "A@X.COM", "+15550000000"), domain.FieldEmail},
		{account("bob", "b@x.com", "+15551234567"), domain.FieldPhone},
	}
	for _, tc := range cases {
		_, err := repo.Create(ctx, tc.acc)
		var dup *domain.DuplicateKeyError
		if !errors.As(err, &dup) || dup.Field != tc.field {
			t.Fatalf("expected duplicate on %s, got %v", tc.field, err)
		}
		if !errors.Is(err, domain.ErrDuplicateKey) {
			t.Fatalf("expected errors.Is ErrDuplicateKey")
		}
	}
	if repo.Len() != 1 {
		t.Fatalf("expected 1 account, got %d", repo.Len())
	}
}

func TestAccountRepository_ConcurrentCreateSameUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	const n = 32
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, account("alice", fmt.Sprintf("a%d@x.com", i), fmt.Sprintf("+1555000%04d", i)))
			if err == nil {
				successes.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if successes.Load() != 1 || repo.Len() != 1 {
		t.Fatalf("expected exactly one winner, got %d successes and %d accounts", successes.Load(), repo.Len())
	}
}

func TestAccountRepository_UpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()
	created, _ := repo.Create(ctx, account("alice", "a@x.com", "+15551234567"))

	if err := repo.UpdatePasswordHash(ctx, created.ID, "new"); err != nil {
		t.Fatalf("UpdatePasswordHash: %v", err)
	}
	got, _ := repo.FindByID(ctx, created.ID)
	if got.PasswordHash != "new" {
		t.Fatalf("hash not updated")
	}
	if err := repo.UpdatePasswordHash(ctx, "missing", "x"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()
	created, _ := repo.Create(ctx, account("alice", "a@x.com", "+15551234567"))

	created.PasswordHash = "tampered"
	got, _ := repo.FindByID(ctx, created.ID)
	if got.PasswordHash != "hash" {
		t.Fatalf("store shares memory with caller")
	}
}

func TestResetTokenRepository_IssueFindConsume(t *testing.T) {
	ctx := context.Background()
	repo := NewResetTokenRepository(time.Hour)

	tok, err := repo.Issue(ctx, "acc-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(tok.Token) != 64 {
		t.Fatalf("expected 64-char hex token, got %q", tok.Token)
	}

	found, err := repo.FindByToken(ctx, tok.Token)
	if err != nil || found.AccountID != "acc-1" {
		t.Fatalf("FindByToken: %v %+v", err, found)
	}

	if err := repo.Consume(ctx, tok.Token); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if err := repo.Consume(ctx, tok.Token); !errors.Is(err, domain.ErrResetTokenNotFound) {
		t.Fatalf("second Consume: expected ErrResetTokenNotFound, got %v", err)
	}
	if _, err := repo.FindByToken(ctx, tok.Token); !errors.Is(err, domain.ErrResetTokenNotFound) {
		t.Fatalf("FindByToken after consume: expected not found, got %v", err)
	}
}

func TestResetTokenRepository_ExpiryIsQueryTime(t *testing.T) {
	ctx := context.Background()
	clk := newFakeClock()
	repo := NewResetTokenRepository(time.Hour).WithClock(clk.now)

	tok, _ := repo.Issue(ctx, "acc-1")
	clk.advance(59 * time.Minute)
	if _, err := repo.FindByToken(ctx, tok.Token); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	clk.advance(time.Minute)
	if _, err := repo.FindByToken(ctx, tok.Token); !errors.Is(err, domain.ErrResetTokenNotFound) {
		t.Fatalf("expected expired token to be absent, got %v", err)
	}
	if err := repo.Consume(ctx, tok.Token); !errors.Is(err, domain.ErrResetTokenNotFound) {
		t.Fatalf("expired token must not be consumable, got %v", err)
	}
}

func TestResetTokenRepository_IssueSweepsExpired(t *testing.T) {
	ctx := context.Background()
	clk := newFakeClock()
	repo := NewResetTokenRepository(time.Hour).WithClock(clk.now)

	_, _ = repo.Issue(ctx, "acc-1")
	_, _ = repo.Issue(ctx, "acc-2")
	clk.advance(2 * time.Hour)
	_, _ = repo.Issue(ctx, "acc-3")

	if repo.Len() != 1 {
		t.Fatalf("expected expired tokens to be swept, len=%d", repo.Len())
	}
}

func TestResetTokenRepository_ConcurrentConsume(t *testing.T) {
	ctx := context.Background()
	repo := NewResetTokenRepository(time.Hour)
	tok, _ := repo.Issue(ctx, "acc-1")

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if repo.Consume(ctx, tok.Token) == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Fatalf("expected exactly one successful consume, got %d", wins.Load())
	}
}

func TestResetTokenRepository_Restore(t *testing.T) {
	ctx := context.Background()
	repo := NewResetTokenRepository(time.Hour)
	tok, _ := repo.Issue(ctx, "acc-1")

	_ = repo.Consume(ctx, tok.Token)
	if err := repo.Restore(ctx, tok); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if _, err := repo.FindByToken(ctx, tok.Token); err != nil {
		t.Fatalf("restored token should be findable: %v", err)
	}
}

func TestSessionStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	clk := newFakeClock()
	store := NewSessionStore(24 * time.Hour).WithClock(clk.now)
	ref := domain.AccountRef{ID: "acc-1", Username: "alice", Email: "a@x.com"}

	sess, err := store.Create(ctx, ref)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.ID == "" || !sess.ExpiresAt.Equal(clk.now().Add(24*time.Hour).UTC()) {
		t.Fatalf("unexpected session: %+v", sess)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil || *got != ref {
		t.Fatalf("Get: %v %+v", err, got)
	}

	if err := store.Destroy(ctx, sess.ID); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after destroy, got %v", err)
	}
	if err := store.Destroy(ctx, sess.ID); err != nil {
		t.Fatalf("Destroy must be idempotent, got %v", err)
	}
}

func TestSessionStore_FixedTTL(t *testing.T) {
	ctx := context.Background()
	clk := newFakeClock()
	store := NewSessionStore(time.Hour).WithClock(clk.now)

	sess, _ := store.Create(ctx, domain.AccountRef{ID: "acc-1"})

	clk.advance(30 * time.Minute)
	if _, err := store.Get(ctx, sess.ID); err != nil {
		t.Fatalf("session should be alive: %v", err)
	}

	// Access does not extend the lifetime.
	clk.advance(30 * time.Minute)
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session to expire at fixed deadline, got %v", err)
	}
}

func TestSessionStore_UnpredictableIDs(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(time.Hour)
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		sess, _ := store.Create(ctx, domain.AccountRef{ID: "acc"})
		if _, dup := seen[sess.ID]; dup {
			t.Fatalf("duplicate session id %s", sess.ID)
		}
		seen[sess.ID] = struct{}{}
	}
}
