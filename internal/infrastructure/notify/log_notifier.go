// Package notify delivers out-of-band messages. The only channel implemented
// is a log sink that prints the e-mail it would have sent.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

// LogNotifier writes each message as a structured log event.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyPasswordReset(_ context.Context, msg domain.PasswordResetMessage) error {
	n.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("simulated email")
	return nil
}
