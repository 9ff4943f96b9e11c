package mocks

import (
	"github.com/stretchr/testify/mock"
)

// PasswordHasher is a testify mock for model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) GenerateSalt() ([]byte, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *PasswordHasher) Hash(password string, salt []byte) ([]byte, error) {
	args := m.Called(password, salt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *PasswordHasher) Verify(password string, salt, hash []byte) bool {
	args := m.Called(password, salt, hash)
	return args.Bool(0)
}
