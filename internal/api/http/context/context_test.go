package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idforge/identity-server/internal/model"
)

func TestManager_SetGetPrincipal(t *testing.T) {
	m := NewManager()

	principal := model.Principal{ID: uuid.New(), Name: "Ana", Email: "ana@x.com"}

	ctx := m.SetPrincipalToContext(context.Background(), principal)

	got, ok := m.GetPrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, principal, got)
}

func TestManager_GetPrincipal_Absent(t *testing.T) {
	m := NewManager()

	_, ok := m.GetPrincipalFromContext(context.Background())
	assert.False(t, ok)
}
