package ports

import (
	"context"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

// ResetNotifier delivers password reset messages out of band.
type ResetNotifier interface {
	NotifyPasswordReset(ctx context.Context, msg domain.PasswordResetMessage) error
}
