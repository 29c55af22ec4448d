package ports

import (
	"context"
	"time"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

// RegisterInput is the raw registration form as submitted.
type RegisterInput struct {
	Username        string
	Email           string
	Phone           string
	Gender          string
	Password        string
	ConfirmPassword string
	CountryCode     string
}

// ResetPasswordInput is the raw reset form as submitted.
type ResetPasswordInput struct {
	Token           string
	Password        string
	ConfirmPassword string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	SessionID string
	ExpiresAt time.Time
	User      domain.PublicUser
}

// AuthService orchestrates the registration, login and credential reset flows.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.PublicUser, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// ForgotPassword succeeds identically whether or not the email is on file.
	ForgotPassword(ctx context.Context, email string) error
	// CheckResetToken reports domain.ErrResetTokenNotFound for unusable tokens.
	CheckResetToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, in ResetPasswordInput) error
	// Logout is idempotent; an empty or unknown session ID is not an error.
	Logout(ctx context.Context, sessionID string) error
	Session(ctx context.Context, sessionID string) (*domain.AccountRef, error)
}
