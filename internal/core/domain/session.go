package domain

import "time"

// Session is the server-side record behind a session cookie. Its lifetime is
// fixed at creation and is not extended by activity.
type Session struct {
	ID        string     `json:"id"`
	Account   AccountRef `json:"account"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Expired reports whether the session is dead at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
