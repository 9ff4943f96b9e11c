package model

import (
	"time"

	"github.com/google/uuid"
)

// SignUpRequest carries the caller input for registration. Password fields
// are ephemeral and never persisted.
type SignUpRequest struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// SignInRequest carries the caller input for signin.
type SignInRequest struct {
	Email    string
	Password string
}

// SignUpResult is the boundary shape for a successful signup. It
// structurally omits credential material.
type SignUpResult struct {
	ID          uuid.UUID
	Name        string
	Email       string
	AccessToken string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SignInResult carries only the issued token.
type SignInResult struct {
	AccessToken string
}
