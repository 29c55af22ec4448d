package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/ports"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/pkg/metrics"
)

const (
	msgRegistered    = "Registration successful!"
	msgLoggedIn      = "Login successful!"
	msgResetSent     = "If an account with that email exists, a password reset link has been sent."
	msgPasswordReset = "Password has been reset successfully."
	msgLoggedOut     = "Logged out successfully."
	msgLogoutFailed  = "Could not log out."
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration form"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Phone:           req.Phone,
		Gender:          req.Gender,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		CountryCode:     req.CountryCode,
	})
	observe("register", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{Success: true, Message: msgRegistered, User: *user})
}

// Login authenticates an account and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	// Every login failure shares one status, including malformed input.
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return unauthorizedIfInvalid(c, err)
	}

	res, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	observe("login", err)
	if err != nil {
		return unauthorizedIfInvalid(c, err)
	}

	c.SetCookie(h.sessionCookie(res.SessionID, int(h.cookie.TTL.Seconds())))
	return c.JSON(http.StatusOK, userResponse{Success: true, Message: msgLoggedIn, User: res.User})
}

// ForgotPassword starts the reset flow. The response never reveals whether
// the address is registered.
//
// @Summary      Request a password reset link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := h.authService.ForgotPassword(c.Request().Context(), req.Email)
	observe("forgot_password", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: msgResetSent})
}

// CheckResetToken reports whether the token from a reset link is still usable.
//
// @Summary      Check a password reset token
// @Tags         auth
// @Produce      json
// @Param        token  path      string  true  "Reset token"
// @Success      200    {object}  tokenResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /reset-password/{token} [get]
func (h *AuthHandler) CheckResetToken(c echo.Context) error {
	token := c.Param("token")
	if err := h.authService.CheckResetToken(c.Request().Context(), token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Success: true, Token: token})
}

// ResetPassword sets a new password using a reset token.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Token and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := h.authService.ResetPassword(c.Request().Context(), ports.ResetPasswordInput{
		Token:           req.Token,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	observe("reset_password", err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: msgPasswordReset})
}

// Logout destroys the current session, if any, and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var sessionID string
	if cookie, err := c.Cookie(h.cookie.Name); err == nil {
		sessionID = cookie.Value
	}

	err := h.authService.Logout(c.Request().Context(), sessionID)
	observe("logout", err)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, msgLogoutFailed).SetInternal(err)
	}

	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: msgLoggedOut})
}

// Session returns the logged-in account.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	ref, err := ctxAccount(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: ref.Public()})
}

func unauthorizedIfInvalid(c echo.Context, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse(ve.Messages...))
	}
	return err
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// observe records the outcome of an auth operation.
func observe(operation string, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
		var ve *domain.ValidationError
		if errors.As(err, &ve) ||
			errors.Is(err, domain.ErrDuplicateKey) ||
			errors.Is(err, domain.ErrInvalidCredentials) ||
			errors.Is(err, domain.ErrResetTokenNotFound) {
			outcome = metrics.OutcomeRejected
		}
	}
	metrics.AuthRequestsTotal.WithLabelValues(operation, outcome).Inc()
}
