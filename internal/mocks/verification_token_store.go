package mocks

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

	"github.com/hatembr/identity-api/internal/domain"
	"github.com/hatembr/identity-api/internal/store"
)

// VerificationTokenStore is a mock of the store.VerificationTokenStore
// interface for use with testify/mock.
type VerificationTokenStore struct {
	mock.Mock
}

// FindAll is a mock implementation of store.VerificationTokenStore.FindAll.
func (m *VerificationTokenStore) FindAll(ctx context.Context) ([]*domain.VerificationToken, error) {
	args := m.Called(ctx)
	if toks, ok := args.Get(0).([]*domain.VerificationToken); ok {
		return toks, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByID is a mock implementation of store.VerificationTokenStore.FindByID.
func (m *VerificationTokenStore) FindByID(ctx context.Context, id int) (*domain.VerificationToken, error) {
	args := m.Called(ctx, id)
	if tok, ok := args.Get(0).(*domain.VerificationToken); ok {
		return tok, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByCredentialID is a mock implementation of
// store.VerificationTokenStore.FindByCredentialID.
func (m *VerificationTokenStore) FindByCredentialID(ctx context.Context, credentialID int) ([]*domain.VerificationToken, error) {
	args := m.Called(ctx, credentialID)
	if toks, ok := args.Get(0).([]*domain.VerificationToken); ok {
		return toks, args.Error(1)
	}
	return nil, args.Error(1)
}

// Save is a mock implementation of store.VerificationTokenStore.Save.
func (m *VerificationTokenStore) Save(ctx context.Context, tok *domain.VerificationToken) error {
	args := m.Called(ctx, tok)
	return args.Error(0)
}

// Update is a mock implementation of store.VerificationTokenStore.Update.
func (m *VerificationTokenStore) Update(ctx context.Context, tok *domain.VerificationToken) error {
	args := m.Called(ctx, tok)
	return args.Error(0)
}

// Delete is a mock implementation of store.VerificationTokenStore.Delete.
func (m *VerificationTokenStore) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx is a mock implementation of store.VerificationTokenStore.WithTx.
func (m *VerificationTokenStore) WithTx(tx *sql.Tx) store.VerificationTokenStore {
	return m
}
