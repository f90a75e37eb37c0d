package mocks

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

	"github.com/hatembr/identity-api/internal/domain"
	"github.com/hatembr/identity-api/internal/store"
)

// UserStore is a mock of the store.UserStore interface for use with
// testify/mock. WithTx returns the mock itself unless an expectation
// overrides it, so transactional code paths exercise the same mock.
type UserStore struct {
	mock.Mock
}

// FindAll is a mock implementation of store.UserStore.FindAll.
func (m *UserStore) FindAll(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByID is a mock implementation of store.UserStore.FindByID.
func (m *UserStore) FindByID(ctx context.Context, id int) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByUsername is a mock implementation of store.UserStore.FindByUsername.
func (m *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// ExistsByID is a mock implementation of store.UserStore.ExistsByID.
func (m *UserStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Save is a mock implementation of store.UserStore.Save.
func (m *UserStore) Save(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Update is a mock implementation of store.UserStore.Update.
func (m *UserStore) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Delete is a mock implementation of store.UserStore.Delete.
func (m *UserStore) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx is a mock implementation of store.UserStore.WithTx.
func (m *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
