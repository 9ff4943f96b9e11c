package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/idforge/identity-server/internal/model"
)

// TokenIssuer is a testify mock for model.TokenIssuer.
type TokenIssuer struct {
	mock.Mock
}

func (m *TokenIssuer) Issue(claims model.TokenClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *TokenIssuer) Decode(tokenString string) (model.TokenClaims, error) {
	args := m.Called(tokenString)
	return args.Get(0).(model.TokenClaims), args.Error(1)
}
