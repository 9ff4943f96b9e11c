package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/idforge/identity-server/internal/model"
)

// IdentityStore is a testify mock for model.IdentityStore.
type IdentityStore struct {
	mock.Mock
}

func (m *IdentityStore) GetByEmail(ctx context.Context, email string) (model.Identity, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Identity), args.Error(1)
}

func (m *IdentityStore) GetByID(ctx context.Context, id uuid.UUID) (model.Identity, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Identity), args.Error(1)
}

func (m *IdentityStore) Create(ctx context.Context, identity model.Identity) (model.Identity, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(model.Identity), args.Error(1)
}
