package domain

import (
	"strings"
	"time"
)

// Gender is the self-declared gender captured at registration.
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

// AllowedGenders lists every value accepted by registration, in display order.
var AllowedGenders = []Gender{GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay}

// Valid reports whether g is one of AllowedGenders.
func (g Gender) Valid() bool {
	for _, allowed := range AllowedGenders {
		if g == allowed {
			return true
		}
	}
	return false
}

// Account is a registered end-user identity. Username, Email and Phone are
// each unique across all accounts; Email is stored lowercased.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Gender       Gender    `json:"gender"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Ref returns the snapshot stored in a session.
func (a *Account) Ref() AccountRef {
	return AccountRef{ID: a.ID, Username: a.Username, Email: a.Email}
}

// Public returns the projection that is safe to send to clients.
func (a *Account) Public() PublicUser {
	return PublicUser{Username: a.Username, Email: a.Email}
}

// AccountRef is a denormalized copy of the identity fields of an Account,
// taken at login. It is not refreshed if the account later changes.
type AccountRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public returns the client-safe projection of the referenced account.
func (r AccountRef) Public() PublicUser {
	return PublicUser{Username: r.Username, Email: r.Email}
}

// PublicUser is the only account shape ever serialized to clients.
type PublicUser struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
