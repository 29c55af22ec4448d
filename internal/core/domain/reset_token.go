package domain

import "time"

// ResetToken is a single-use bearer credential authorizing one password change
// for AccountID. It is valid until CreatedAt plus the configured TTL.
type ResetToken struct {
	Token     string
	AccountID string
	CreatedAt time.Time
}

// ExpiresAt returns the instant the token stops being valid.
func (t *ResetToken) ExpiresAt(ttl time.Duration) time.Time {
	return t.CreatedAt.Add(ttl)
}

// Expired reports whether the token is past its deadline at now.
func (t *ResetToken) Expired(now time.Time, ttl time.Duration) bool {
	return !now.Before(t.ExpiresAt(ttl))
}

// PasswordResetMessage is the out-of-band notification carrying a reset link.
type PasswordResetMessage struct {
	To      string
	Subject string
	Body    string
	Link    string
}
