// Package validation checks request fields explicitly before any business
// logic runs. Every failing field is reported, not just the first.
package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/idforge/identity-server/internal/apierrors"
	"github.com/idforge/identity-server/internal/model"
)

const minPasswordLength = 6

// ValidateSignUp checks a signup request field by field.
func ValidateSignUp(req model.SignUpRequest) []apierrors.FieldError {
	var fields []apierrors.FieldError

	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, apierrors.FieldError{Field: "name", Message: "name is required"})
	}
	fields = append(fields, validateEmail(req.Email)...)
	fields = append(fields, validatePassword("password", req.Password)...)
	fields = append(fields, validatePassword("passwordConfirmation", req.PasswordConfirmation)...)

	return fields
}

// ValidateSignIn checks a signin request field by field.
func ValidateSignIn(req model.SignInRequest) []apierrors.FieldError {
	var fields []apierrors.FieldError

	fields = append(fields, validateEmail(req.Email)...)
	fields = append(fields, validatePassword("password", req.Password)...)

	return fields
}

func validateEmail(email string) []apierrors.FieldError {
	if email == "" {
		return []apierrors.FieldError{{Field: "email", Message: "email is required"}}
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return []apierrors.FieldError{{Field: "email", Message: "email must be a valid address"}}
	}

	return nil
}

func validatePassword(field, password string) []apierrors.FieldError {
	if password == "" {
		return []apierrors.FieldError{{Field: field, Message: fmt.Sprintf("%s is required", field)}}
	}
	if len(password) < minPasswordLength {
		return []apierrors.FieldError{{
			Field:   field,
			Message: fmt.Sprintf("%s must be at least %d characters", field, minPasswordLength),
		}}
	}

	return nil
}
