package ports

import (
	"context"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

// SessionStore is the server-side session manager.
type SessionStore interface {
	// Create starts a session with an unpredictable ID and a fixed TTL.
	Create(ctx context.Context, ref domain.AccountRef) (*domain.Session, error)
	// Get returns domain.ErrSessionNotFound for unknown or expired IDs.
	Get(ctx context.Context, id string) (*domain.AccountRef, error)
	// Destroy removes the session. Destroying an unknown ID is not an error.
	Destroy(ctx context.Context, id string) error
}
