package handler

import "github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"

// ErrorResponse is the envelope returned on all 4xx/5xx responses.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors,omitempty"`
	Message string   `json:"message,omitempty"`
}

// NewErrorResponse builds a failed envelope listing msgs.
func NewErrorResponse(msgs ...string) ErrorResponse {
	return ErrorResponse{Success: false, Errors: msgs}
}

// --- Request types ---
//
// The max bounds only cap payload size; the field rules live in the
// validation package and run inside the service.

type registerRequest struct {
	Username        string `json:"username"        validate:"max=64"`
	Email           string `json:"email"           validate:"max=254"`
	Phone           string `json:"phone"           validate:"max=32"`
	Gender          string `json:"gender"          validate:"max=32"`
	Password        string `json:"password"        validate:"max=256"`
	ConfirmPassword string `json:"confirmPassword" validate:"max=256"`
	CountryCode     string `json:"countryCode"     validate:"max=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"max=64"`
	Password string `json:"password" validate:"max=256"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"max=254"`
}

type resetPasswordRequest struct {
	Token           string `json:"token"           validate:"max=128"`
	Password        string `json:"password"        validate:"max=256"`
	ConfirmPassword string `json:"confirmPassword" validate:"max=256"`
}

// --- Response types ---

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type userResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	User    domain.PublicUser `json:"user"`
}

type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type weatherResponse struct {
	Success bool           `json:"success"`
	Weather domain.Weather `json:"weather"`
	Cached  bool           `json:"cached"`
}
