package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// IdentityStore defines persistence operations for identities.
type IdentityStore interface {
	GetByEmail(ctx context.Context, email string) (Identity, error)
	GetByID(ctx context.Context, id uuid.UUID) (Identity, error)
	Create(ctx context.Context, identity Identity) (Identity, error)
}

// Identity represents a registered user with credential material.
// Email is unique across all identities; the store enforces the
// constraint so concurrent signups cannot both win.
type Identity struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash []byte
	PasswordSalt []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the redacted view of an identity resolved from a token.
// Credential material never appears in this shape.
type Principal struct {
	ID    uuid.UUID
	Name  string
	Email string
}
