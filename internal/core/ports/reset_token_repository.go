package ports

import (
	"context"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

// ResetTokenRepository stores password reset tokens. Expiry is a query-time
// predicate: tokens older than the store's TTL behave as absent even before
// they are physically removed.
type ResetTokenRepository interface {
	// Issue generates a fresh high-entropy token for accountID and persists it.
	Issue(ctx context.Context, accountID string) (*domain.ResetToken, error)
	// FindByToken returns domain.ErrResetTokenNotFound for unknown or expired tokens.
	FindByToken(ctx context.Context, token string) (*domain.ResetToken, error)
	// Consume atomically deletes the token. Exactly one concurrent caller
	// succeeds; the rest get domain.ErrResetTokenNotFound.
	Consume(ctx context.Context, token string) error
	// Restore puts back a token previously removed by Consume.
	Restore(ctx context.Context, token *domain.ResetToken) error
}
