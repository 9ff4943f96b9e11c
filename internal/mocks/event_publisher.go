package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/idforge/identity-server/internal/model"
)

// EventPublisher is a testify mock for model.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, topic string, event model.IdentityCreated) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}
