package mocks

import (
	"github.com/stretchr/testify/mock"
)

// PasswordHasher is a mock of the auth.PasswordHasher interface for use with
// testify/mock.
type PasswordHasher struct {
	mock.Mock
}

// Hash is a mock implementation of auth.PasswordHasher.Hash.
func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// Compare is a mock implementation of auth.PasswordHasher.Compare.
func (m *PasswordHasher) Compare(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}
