// Package apierrors defines the business error taxonomy surfaced to callers.
// Every error carries a stable machine-readable code and the HTTP status it
// maps to at the transport boundary. Infrastructure failures are not part of
// this taxonomy and must propagate as plain wrapped errors.
package apierrors

import (
	"fmt"
	"net/http"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a business error with a stable code.
type APIError struct {
	Code       string
	HTTPStatus int
	Template   string
	Args       []any
	Fields     []FieldError
	cause      error
}

func (e *APIError) Error() string {
	return fmt.Sprintf(e.Template, e.Args...)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// NewErrValidation reports malformed caller input with a structured
// field list.
func NewErrValidation(fields []FieldError) *APIError {
	return &APIError{
		Code:       "VALIDATION_FAILED",
		HTTPStatus: http.StatusUnprocessableEntity,
		Template:   "invalid request",
		Fields:     fields,
	}
}

// NewErrInvalidRequestBody reports a request body that could not be
// decoded.
func NewErrInvalidRequestBody() *APIError {
	return &APIError{
		Code:       "INVALID_REQUEST_BODY",
		HTTPStatus: http.StatusBadRequest,
		Template:   "invalid request body",
	}
}

// NewErrPasswordMismatch reports a signup whose password and confirmation
// differ.
func NewErrPasswordMismatch() *APIError {
	return &APIError{
		Code:       "PASSWORD_MISMATCH",
		HTTPStatus: http.StatusUnprocessableEntity,
		Template:   "password and confirmation do not match",
	}
}

// NewErrEmailIsTaken reports a signup against an email that already has an
// identity.
func NewErrEmailIsTaken(email string) *APIError {
	return &APIError{
		Code:       "EMAIL_TAKEN",
		HTTPStatus: http.StatusUnprocessableEntity,
		Template:   "email %s is already taken",
		Args:       []any{email},
	}
}

// NewErrInvalidCredentials reports a failed signin. The message is identical
// for unknown emails and wrong passwords so callers cannot enumerate
// accounts.
func NewErrInvalidCredentials() *APIError {
	return &APIError{
		Code:       "INVALID_CREDENTIALS",
		HTTPStatus: http.StatusUnauthorized,
		Template:   "invalid e-mail or password",
	}
}

// NewErrUnauthenticated reports a token that does not resolve to a live
// identity.
func NewErrUnauthenticated() *APIError {
	return &APIError{
		Code:       "UNAUTHENTICATED",
		HTTPStatus: http.StatusUnauthorized,
		Template:   "unauthenticated",
	}
}

// NewErrMissingAuthorizationToken reports a request to a protected endpoint
// without a bearer token.
func NewErrMissingAuthorizationToken() *APIError {
	return &APIError{
		Code:       "MISSING_AUTHORIZATION_TOKEN",
		HTTPStatus: http.StatusUnauthorized,
		Template:   "missing authorization token",
	}
}

// NewErrInvalidAuthorizationToken reports a bearer token that failed to
// decode or verify.
func NewErrInvalidAuthorizationToken() *APIError {
	return &APIError{
		Code:       "INVALID_AUTHORIZATION_TOKEN",
		HTTPStatus: http.StatusUnauthorized,
		Template:   "invalid authorization token",
	}
}

// NewErrInternalServerError wraps an unexpected failure. The cause stays
// available for logs via Unwrap; callers only see a generic message.
func NewErrInternalServerError(err error) *APIError {
	return &APIError{
		Code:       "INTERNAL_SERVER_ERROR",
		HTTPStatus: http.StatusInternalServerError,
		Template:   "internal server error",
		cause:      err,
	}
}
