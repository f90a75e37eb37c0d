package mocks

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

	"github.com/hatembr/identity-api/internal/domain"
	"github.com/hatembr/identity-api/internal/store"
)

// CredentialStore is a mock of the store.CredentialStore interface for use
// with testify/mock.
type CredentialStore struct {
	mock.Mock
}

// FindAll is a mock implementation of store.CredentialStore.FindAll.
func (m *CredentialStore) FindAll(ctx context.Context) ([]*domain.Credential, error) {
	args := m.Called(ctx)
	if creds, ok := args.Get(0).([]*domain.Credential); ok {
		return creds, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByID is a mock implementation of store.CredentialStore.FindByID.
func (m *CredentialStore) FindByID(ctx context.Context, id int) (*domain.Credential, error) {
	args := m.Called(ctx, id)
	if cred, ok := args.Get(0).(*domain.Credential); ok {
		return cred, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByUsername is a mock implementation of store.CredentialStore.FindByUsername.
func (m *CredentialStore) FindByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	args := m.Called(ctx, username)
	if cred, ok := args.Get(0).(*domain.Credential); ok {
		return cred, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByUserID is a mock implementation of store.CredentialStore.FindByUserID.
func (m *CredentialStore) FindByUserID(ctx context.Context, userID int) (*domain.Credential, error) {
	args := m.Called(ctx, userID)
	if cred, ok := args.Get(0).(*domain.Credential); ok {
		return cred, args.Error(1)
	}
	return nil, args.Error(1)
}

// ExistsByUsername is a mock implementation of store.CredentialStore.ExistsByUsername.
func (m *CredentialStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// ExistsByUserID is a mock implementation of store.CredentialStore.ExistsByUserID.
func (m *CredentialStore) ExistsByUserID(ctx context.Context, userID int) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// Save is a mock implementation of store.CredentialStore.Save.
func (m *CredentialStore) Save(ctx context.Context, cred *domain.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

// Update is a mock implementation of store.CredentialStore.Update.
func (m *CredentialStore) Update(ctx context.Context, cred *domain.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

// Delete is a mock implementation of store.CredentialStore.Delete.
func (m *CredentialStore) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx is a mock implementation of store.CredentialStore.WithTx.
func (m *CredentialStore) WithTx(tx *sql.Tx) store.CredentialStore {
	return m
}
