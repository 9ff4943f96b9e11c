package model

import (
	"context"

	"github.com/google/uuid"
)

// TopicIdentityCreated is published once per successful registration.
const TopicIdentityCreated = "identity.created"

// EventPublisher delivers domain events to downstream consumers.
// Delivery is best-effort: callers must not fail user-visible operations
// on publish errors.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event IdentityCreated) error
}

// IdentityCreated announces a new registration. Credential material is
// never part of the payload.
type IdentityCreated struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
