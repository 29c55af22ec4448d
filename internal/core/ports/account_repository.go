package ports

import (
	"context"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

// AccountRepository is the credential store. Lookups return
// domain.ErrAccountNotFound when nothing matches.
type AccountRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Account, error)

	// Create persists a new account and returns it with its ID assigned. It is
	// the sole enforcement point for uniqueness: a collision on username, email
	// or phone yields a *domain.DuplicateKeyError even under concurrent creates.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)

	UpdatePasswordHash(ctx context.Context, id, hash string) error
}
