// Package validation holds the input rules shared by every entry point. All
// functions are pure: they take form values and return the full list of
// violations, never stopping at the first one.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
)

// PasswordSymbols is the set of characters that satisfy the symbol requirement.
const PasswordSymbols = `!@#$%^&*()_+}{"':;?/>.<,`

const (
	minPasswordLength = 8
	// bcrypt ignores input past this many bytes.
	maxPasswordBytes = 72
)

const (
	MsgAllFieldsRequired     = "All fields are required."
	MsgLoginFieldsRequired   = "Username and password are required."
	MsgEmailRequired         = "Email is required."
	MsgInvalidEmail          = "Please enter a valid email address."
	MsgInvalidPhone          = "Please enter a valid 10-digit phone number (numbers only)."
	MsgInvalidGender         = "Invalid gender selected."
	MsgPasswordMismatch      = "Passwords do not match."
	MsgWeakPassword          = "Password must be at least 8 characters, include uppercase, lowercase, number, and special character."
	MsgPasswordTooLong       = "Password must be at most 72 bytes long."
	MsgInvalidCountryCode    = "Please select a valid country code."
	msgFieldFailedValidation = "Invalid value for "
)

var (
	phoneSeparators  = strings.NewReplacer("-", "", " ", "", "(", "", ")", "")
	phonePattern     = regexp.MustCompile(`^[0-9]{10}$`)
	dialCodePattern  = regexp.MustCompile(`^\+[0-9]{1,4}$`)
)

// Violation is one broken rule.
type Violation struct {
	Field   string
	Rule    string
	Message string
}

// Registration is the registration form after trimming.
type Registration struct {
	Username        string `validate:"required"`
	Email           string `validate:"required,email"`
	Phone           string `validate:"required,phone10"`
	Gender          string `validate:"required,gender"`
	Password        string `validate:"required,password_strength,bcrypt_len"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	CountryCode     string `validate:"required,dial_code"`
}

// Login is the login form.
type Login struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// ForgotPassword is the forgot-password form.
type ForgotPassword struct {
	Email string `validate:"required"`
}

// PasswordReset is the reset form.
type PasswordReset struct {
	Token           string `validate:"required"`
	Password        string `validate:"required,password_strength,bcrypt_len"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

var (
	engine     *validator.Validate
	engineOnce sync.Once
)

// Engine returns the shared validator with the custom rules registered.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		rules := map[string]validator.Func{
			"phone10": func(fl validator.FieldLevel) bool {
				return IsValidPhone(fl.Field().String())
			},
			"gender": func(fl validator.FieldLevel) bool {
				return domain.Gender(fl.Field().String()).Valid()
			},
			"password_strength": func(fl validator.FieldLevel) bool {
				return IsStrongPassword(fl.Field().String())
			},
			"bcrypt_len": func(fl validator.FieldLevel) bool {
				return len(fl.Field().String()) <= maxPasswordBytes
			},
			"dial_code": func(fl validator.FieldLevel) bool {
				return IsValidDialCode(fl.Field().String())
			},
		}
		for tag, fn := range rules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("validation: register %q: %v", tag, err))
			}
		}
		engine = v
	})
	return engine
}

func ValidateRegistration(r Registration) []Violation {
	return check(r, MsgAllFieldsRequired)
}

func ValidateLogin(l Login) []Violation {
	return check(l, MsgLoginFieldsRequired)
}

func ValidateForgotPassword(f ForgotPassword) []Violation {
	return check(f, MsgEmailRequired)
}

func ValidatePasswordReset(r PasswordReset) []Violation {
	return check(r, MsgAllFieldsRequired)
}

// Messages flattens violations into user-facing strings.
func Messages(vs []Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Message)
	}
	return out
}

// NormalizePhone strips the separators users commonly type.
func NormalizePhone(phone string) string {
	return phoneSeparators.Replace(strings.TrimSpace(phone))
}

// IsValidPhone reports whether phone is exactly ten digits once separators are removed.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}

// IsValidDialCode reports whether code is an international dialing prefix
// such as "+1" or "+44".
func IsValidDialCode(code string) bool {
	return dialCodePattern.MatchString(code)
}

// IsStrongPassword enforces the password policy: at least eight characters
// with an uppercase letter, a lowercase letter, a digit and a PasswordSymbols
// character.
func IsStrongPassword(password string) bool {
	if len([]rune(password)) < minPasswordLength {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// check runs the struct rules. Missing fields collapse into a single
// requiredMsg so the caller sees it once regardless of how many are blank.
func check(form any, requiredMsg string) []Violation {
	err := Engine().Struct(form)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []Violation{{Rule: "invalid", Message: err.Error()}}
	}

	var (
		out          []Violation
		seenRequired bool
	)
	for _, fe := range ve {
		if fe.Tag() == "required" {
			if seenRequired {
				continue
			}
			seenRequired = true
			out = append(out, Violation{Field: fe.Field(), Rule: "required", Message: requiredMsg})
			continue
		}
		out = append(out, Violation{Field: fe.Field(), Rule: fe.Tag(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return MsgInvalidEmail
	case "phone10":
		return MsgInvalidPhone
	case "gender":
		return MsgInvalidGender
	case "password_strength":
		return MsgWeakPassword
	case "bcrypt_len":
		return MsgPasswordTooLong
	case "eqfield":
		return MsgPasswordMismatch
	case "dial_code":
		return MsgInvalidCountryCode
	default:
		return msgFieldFailedValidation + strings.ToLower(fe.Field()) + "."
	}
}
