package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/ports"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/validation"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/pkg/metrics"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/pkg/randtoken"
)

const (
	resetSubject = "Password Reset Request"
	// restoreTimeout bounds putting a consumed token back after a failed
	// password write.
	restoreTimeout = 5 * time.Second
)

// AuthDeps groups the collaborators of AuthService.
type AuthDeps struct {
	Accounts ports.AccountRepository
	Tokens   ports.ResetTokenRepository
	Sessions ports.SessionStore
	Hasher   ports.PasswordHasher
	Notifier ports.ResetNotifier
	// BaseURL prefixes reset links, e.g. "https://example.com".
	BaseURL string
}

// AuthService implements registration, login, logout and the password
// reset flow. It holds no per-request state; all shared state lives in the
// stores, which provide the atomicity guarantees.
type AuthService struct {
	accounts ports.AccountRepository
	tokens   ports.ResetTokenRepository
	sessions ports.SessionStore
	hasher   ports.PasswordHasher
	notifier ports.ResetNotifier
	baseURL  string
	log      zerolog.Logger

	// dummyHash is verified against when the username is unknown so both
	// login failure branches pay for a bcrypt comparison.
	dummyHash string
}

// NewAuthService fails if the hasher cannot produce the dummy hash used to
// equalize login timing.
func NewAuthService(deps AuthDeps, log zerolog.Logger) (*AuthService, error) {
	secret, err := randtoken.Hex(16)
	if err != nil {
		return nil, fmt.Errorf("auth service: dummy secret: %w", err)
	}
	dummy, err := deps.Hasher.Hash(secret)
	if err != nil {
		return nil, fmt.Errorf("auth service: dummy hash: %w", err)
	}

	return &AuthService{
		accounts:  deps.Accounts,
		tokens:    deps.Tokens,
		sessions:  deps.Sessions,
		hasher:    deps.Hasher,
		notifier:  deps.Notifier,
		baseURL:   strings.TrimRight(deps.BaseURL, "/"),
		log:       log,
		dummyHash: dummy,
	}, nil
}

var _ ports.AuthService = (*AuthService)(nil)

// Register validates the form, reports every violation and uniqueness
// conflict at once, then creates the account. The uniqueness pre-check only
// improves the error list; Create is what actually guarantees it.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.PublicUser, error) {
	form := validation.Registration{
		Username:        strings.TrimSpace(in.Username),
		Email:           domain.NormalizeEmail(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		Gender:          strings.TrimSpace(in.Gender),
		Password:        strings.TrimSpace(in.Password),
		ConfirmPassword: strings.TrimSpace(in.ConfirmPassword),
		CountryCode:     strings.TrimSpace(in.CountryCode),
	}
	violations := validation.ValidateRegistration(form)
	phone := form.CountryCode + validation.NormalizePhone(form.Phone)

	conflicts, err := s.conflicts(ctx, form, phone, violations)
	if err != nil {
		return nil, fmt.Errorf("register: check uniqueness: %w", err)
	}

	messages := append(validation.Messages(violations), conflicts...)
	if len(messages) > 0 {
		return nil, domain.NewValidationError(messages...)
	}

	hash, err := s.hasher.Hash(form.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.accounts.Create(ctx, &domain.Account{
		Username:     form.Username,
		Email:        form.Email,
		Phone:        phone,
		Gender:       domain.Gender(form.Gender),
		PasswordHash: hash,
	})
	if err != nil {
		var dup *domain.DuplicateKeyError
		if errors.As(err, &dup) {
			s.log.Info().Str("field", dup.Field).Msg("registration lost uniqueness race")
			return nil, dup
		}
		return nil, fmt.Errorf("register: create account: %w", err)
	}

	s.log.Info().Str("account_id", created.ID).Str("username", created.Username).Msg("account registered")
	pub := created.Public()
	return &pub, nil
}

// conflicts looks up each unique field that is present and well formed.
// Blank fields are skipped on their own value since the required rule is
// reported only once per form.
func (s *AuthService) conflicts(ctx context.Context, form validation.Registration, phone string, violations []validation.Violation) ([]string, error) {
	bad := make(map[string]bool, len(violations))
	for _, v := range violations {
		bad[v.Field] = true
	}

	checks := []struct {
		field string
		value string
		skip  bool
		find  func(context.Context, string) (*domain.Account, error)
	}{
		{domain.FieldUsername, form.Username, form.Username == "", s.accounts.FindByUsername},
		{domain.FieldEmail, form.Email, form.Email == "" || bad["Email"], s.accounts.FindByEmail},
		{domain.FieldPhone, phone, form.Phone == "" || form.CountryCode == "" || bad["Phone"] || bad["CountryCode"], s.accounts.FindByPhone},
	}

	var out []string
	for _, c := range checks {
		if c.skip {
			continue
		}
		_, err := c.find(ctx, c.value)
		switch {
		case err == nil:
			out = append(out, (&domain.DuplicateKeyError{Field: c.field, Value: c.value}).Error())
		case errors.Is(err, domain.ErrAccountNotFound):
		default:
			return nil, err
		}
	}
	return out, nil
}

// Login authenticates and opens a session. Unknown usernames and wrong
// passwords produce the same error, and both branches pay for a bcrypt
// comparison.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	form := validation.Login{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
	}
	if vs := validation.ValidateLogin(form); len(vs) > 0 {
		return nil, domain.NewValidationError(validation.Messages(vs)...)
	}

	account, err := s.accounts.FindByUsername(ctx, form.Username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			_, _ = s.hasher.Verify(form.Password, s.dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: find account: %w", err)
	}

	ok, err := s.hasher.Verify(form.Password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("login: account %s: %w", account.ID, err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, account.Ref())
	if err != nil {
		return nil, fmt.Errorf("login: create session: %w", err)
	}
	metrics.SessionsTotal.WithLabelValues(metrics.SessionCreated).Inc()

	s.log.Info().Str("account_id", account.ID).Msg("login succeeded")
	return &ports.LoginResult{
		SessionID: sess.ID,
		ExpiresAt: sess.ExpiresAt,
		User:      domain.PublicUser{Username: account.Username},
	}, nil
}

// ForgotPassword issues a reset token and hands the link to the notifier
// when the email is on file. The caller sees the same result either way.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	form := validation.ForgotPassword{Email: domain.NormalizeEmail(email)}
	if vs := validation.ValidateForgotPassword(form); len(vs) > 0 {
		return domain.NewValidationError(validation.Messages(vs)...)
	}

	account, err := s.accounts.FindByEmail(ctx, form.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.log.Info().Msg("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("forgot password: find account: %w", err)
	}

	token, err := s.tokens.Issue(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("forgot password: issue token: %w", err)
	}
	metrics.ResetTokensIssuedTotal.Inc()

	link := s.baseURL + "/reset-password/" + token.Token
	msg := domain.PasswordResetMessage{
		To:      account.Email,
		Subject: resetSubject,
		Body:    "Click this link to reset your password: " + link,
		Link:    link,
	}
	if err := s.notifier.NotifyPasswordReset(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("account_id", account.ID).Msg("reset notification not queued")
		return nil
	}

	s.log.Info().Str("account_id", account.ID).Msg("password reset token issued")
	return nil
}

func (s *AuthService) CheckResetToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrResetTokenNotFound
	}
	if _, err := s.tokens.FindByToken(ctx, token); err != nil {
		if errors.Is(err, domain.ErrResetTokenNotFound) {
			return err
		}
		return fmt.Errorf("check reset token: %w", err)
	}
	return nil
}

// ResetPassword sets a new password using a reset token. The token is
// consumed before the hash is written, so concurrent requests cannot both
// succeed; if the write then fails the token is put back so it stays usable.
func (s *AuthService) ResetPassword(ctx context.Context, in ports.ResetPasswordInput) error {
	form := validation.PasswordReset{
		Token:           strings.TrimSpace(in.Token),
		Password:        strings.TrimSpace(in.Password),
		ConfirmPassword: strings.TrimSpace(in.ConfirmPassword),
	}
	if vs := validation.ValidatePasswordReset(form); len(vs) > 0 {
		return domain.NewValidationError(validation.Messages(vs)...)
	}

	token, err := s.tokens.FindByToken(ctx, form.Token)
	if err != nil {
		if errors.Is(err, domain.ErrResetTokenNotFound) {
			return err
		}
		return fmt.Errorf("reset password: find token: %w", err)
	}

	account, err := s.accounts.FindByID(ctx, token.AccountID)
	if err != nil {
		// A dangling token is a consistency fault, not a caller mistake.
		return fmt.Errorf("reset password: load account %s: %w", token.AccountID, err)
	}

	hash, err := s.hasher.Hash(form.Password)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	if err := s.tokens.Consume(ctx, token.Token); err != nil {
		if errors.Is(err, domain.ErrResetTokenNotFound) {
			return err
		}
		return fmt.Errorf("reset password: consume token: %w", err)
	}

	if err := s.accounts.UpdatePasswordHash(ctx, account.ID, hash); err != nil {
		// The request context may be the reason the update failed.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), restoreTimeout)
		rerr := s.tokens.Restore(rctx, token)
		cancel()
		if rerr != nil {
			s.log.Error().Err(rerr).Str("account_id", account.ID).Msg("failed to restore reset token")
		}
		return fmt.Errorf("reset password: update hash: %w", err)
	}

	s.log.Info().Str("account_id", account.ID).Msg("password reset")
	return nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	metrics.SessionsTotal.WithLabelValues(metrics.SessionDestroyed).Inc()
	return nil
}

func (s *AuthService) Session(ctx context.Context, sessionID string) (*domain.AccountRef, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	ref, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("session: %w", err)
	}
	return ref, nil
}
