package mocks

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

	"github.com/hatembr/identity-api/internal/domain"
	"github.com/hatembr/identity-api/internal/store"
)

// AddressStore is a mock of the store.AddressStore interface for use with
// testify/mock.
type AddressStore struct {
	mock.Mock
}

// FindAll is a mock implementation of store.AddressStore.FindAll.
func (m *AddressStore) FindAll(ctx context.Context) ([]*domain.Address, error) {
	args := m.Called(ctx)
	if addrs, ok := args.Get(0).([]*domain.Address); ok {
		return addrs, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByID is a mock implementation of store.AddressStore.FindByID.
func (m *AddressStore) FindByID(ctx context.Context, id int) (*domain.Address, error) {
	args := m.Called(ctx, id)
	if addr, ok := args.Get(0).(*domain.Address); ok {
		return addr, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByUserID is a mock implementation of store.AddressStore.FindByUserID.
func (m *AddressStore) FindByUserID(ctx context.Context, userID int) ([]*domain.Address, error) {
	args := m.Called(ctx, userID)
	if addrs, ok := args.Get(0).([]*domain.Address); ok {
		return addrs, args.Error(1)
	}
	return nil, args.Error(1)
}

// Save is a mock implementation of store.AddressStore.Save.
func (m *AddressStore) Save(ctx context.Context, addr *domain.Address) error {
	args := m.Called(ctx, addr)
	return args.Error(0)
}

// Update is a mock implementation of store.AddressStore.Update.
func (m *AddressStore) Update(ctx context.Context, addr *domain.Address) error {
	args := m.Called(ctx, addr)
	return args.Error(0)
}

// Delete is a mock implementation of store.AddressStore.Delete.
func (m *AddressStore) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx is a mock implementation of store.AddressStore.WithTx.
func (m *AddressStore) WithTx(tx *sql.Tx) store.AddressStore {
	return m
}
