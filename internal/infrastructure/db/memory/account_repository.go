package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

// AccountRepository implements ports.AccountRepository.
type AccountRepository struct {
	mu         sync.RWMutex
	byID       map[string]*domain.Account
	byUsername map[string]string
	byEmail    map[string]string
	byPhone    map[string]string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:       make(map[string]*domain.Account),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
		byPhone:    make(map[string]string),
	}
}

func (r *AccountRepository) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(id)
}

func (r *AccountRepository) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(r.byUsername[username])
}

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(r.byEmail[domain.NormalizeEmail(email)])
}

func (r *AccountRepository) FindByPhone(_ context.Context, phone string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(r.byPhone[phone])
}

// Create checks all three unique indexes and inserts under one write lock.
func (r *AccountRepository) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	a := *account
	a.Email = domain.NormalizeEmail(a.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case r.taken(r.byUsername, a.Username):
		return nil, &domain.DuplicateKeyError{Field: domain.FieldUsername, Value: a.Username}
	case r.taken(r.byEmail, a.Email):
		return nil, &domain.DuplicateKeyError{Field: domain.FieldEmail, Value: a.Email}
	case r.taken(r.byPhone, a.Phone):
		return nil, &domain.DuplicateKeyError{Field: domain.FieldPhone, Value: a.Phone}
	}

	a.ID = uuid.NewString()
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	r.byID[a.ID] = &a
	r.byUsername[a.Username] = a.ID
	r.byEmail[a.Email] = a.ID
	r.byPhone[a.Phone] = a.ID

	out := a
	return &out, nil
}

func (r *AccountRepository) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.PasswordHash = hash
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Len returns the number of stored accounts.
func (r *AccountRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func (r *AccountRepository) taken(index map[string]string, key string) bool {
	_, ok := index[key]
	return ok
}

func (r *AccountRepository) lookup(id string) (*domain.Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	out := *a
	return &out, nil
}
