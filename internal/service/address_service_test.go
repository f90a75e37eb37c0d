package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hatembr/identity-api/internal/domain"
	"github.com/hatembr/identity-api/internal/mocks"
	"github.com/hatembr/identity-api/internal/service"
	"github.com/hatembr/identity-api/internal/store"
	"github.com/hatembr/identity-api/internal/transfer"
)

func TestAddressService_Create(t *testing.T) {
	t.Run("associates the address with the referenced user", func(t *testing.T) {
		mockAddrStore := new(mocks.AddressStore)
		mockUserStore := new(mocks.UserStore)

		mockAddrStore.On("Save", mock.Anything, mock.MatchedBy(func(a *domain.Address) bool {
			return a.UserID == 3 && a.City == "New York" && a.FullAddress == "123 Main St"
		})).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Address).ID = 4
		})
		mockUserStore.On("ExistsByID", mock.Anything, 3).Return(true, nil)
		mockUserStore.On("FindByID", mock.Anything, 3).
			Return(&domain.User{ID: 3, FirstName: "John", LastName: "Doe", Email: "john@example.com"}, nil)

		svc := service.NewAddressService(mockAddrStore, mockUserStore, nil, newTestLogger())

		created, err := svc.Create(context.Background(), &transfer.Address{
			FullAddress: "123 Main St",
			PostalCode:  "10001",
			City:        "New York",
			User:        &transfer.User{ID: 3},
		})

		require.NoError(t, err)
		assert.Equal(t, 4, created.ID)
		require.NotNil(t, created.User)
		assert.Equal(t, 3, created.User.ID)
		mockAddrStore.AssertExpectations(t)
	})

	t.Run("referenced user does not exist", func(t *testing.T) {
		mockAddrStore := new(mocks.AddressStore)
		mockUserStore := new(mocks.UserStore)
		mockUserStore.On("ExistsByID", mock.Anything, 42).Return(false, nil)

		svc := service.NewAddressService(mockAddrStore, mockUserStore, nil, newTestLogger())

		_, err := svc.Create(context.Background(), &transfer.Address{
			FullAddress: "123 Main St",
			City:        "New York",
			User:        &transfer.User{ID: 42},
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrUserNotFound))
		mockAddrStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing user reference", func(t *testing.T) {
		svc := service.NewAddressService(new(mocks.AddressStore), new(mocks.UserStore), nil, newTestLogger())

		_, err := svc.Create(context.Background(), &transfer.Address{
			FullAddress: "123 Main St",
			City:        "New York",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrMissingUserRef))
	})

	t.Run("rejects invalid addresses", func(t *testing.T) {
		mockAddrStore := new(mocks.AddressStore)

		svc := service.NewAddressService(mockAddrStore, new(mocks.UserStore), nil, newTestLogger())

		_, err := svc.Create(context.Background(), &transfer.Address{
			FullAddress: "123 Main St",
			User:        &transfer.User{ID: 3},
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrEmptyCity))
		mockAddrStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAddressService_Update(t *testing.T) {
	t.Run("overwrites own fields, never the owner", func(t *testing.T) {
		mockAddrStore := new(mocks.AddressStore)
		mockUserStore := new(mocks.UserStore)

		mockAddrStore.On("FindByID", mock.Anything, 4).
			Return(&domain.Address{
				ID: 4, FullAddress: "123 Main St", PostalCode: "10001",
				City: "New York", UserID: 3,
			}, nil)
		mockAddrStore.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.Address) bool {
			return a.ID == 4 &&
				a.UserID == 3 &&
				a.City == "Los Angeles" &&
				a.FullAddress == "456 Sunset Blvd"
		})).Return(nil)
		mockUserStore.On("FindByID", mock.Anything, 3).
			Return(&domain.User{ID: 3, FirstName: "John", LastName: "Doe", Email: "john@example.com"}, nil)

		svc := service.NewAddressService(mockAddrStore, mockUserStore, nil, newTestLogger())

		// The payload claims a different owner; it must be ignored.
		updated, err := svc.Update(context.Background(), &transfer.Address{
			ID:          4,
			FullAddress: "456 Sunset Blvd",
			PostalCode:  "90028",
			City:        "Los Angeles",
			User:        &transfer.User{ID: 99},
		})

		require.NoError(t, err)
		assert.Equal(t, "Los Angeles", updated.City)
		require.NotNil(t, updated.User)
		assert.Equal(t, 3, updated.User.ID)
		mockAddrStore.AssertExpectations(t)
	})

	t.Run("address not found", func(t *testing.T) {
		mockAddrStore := new(mocks.AddressStore)
		mockAddrStore.On("FindByID", mock.Anything, 42).Return(nil, store.ErrAddressNotFound)

		svc := service.NewAddressService(mockAddrStore, new(mocks.UserStore), nil, newTestLogger())

		_, err := svc.UpdateByID(context.Background(), 42, &transfer.Address{
			FullAddress: "456 Sunset Blvd",
			City:        "Los Angeles",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrAddressNotFound))
	})
}

func TestAddressService_Delete(t *testing.T) {
	t.Run("deleting an absent address is a no-op", func(t *testing.T) {
		mockAddrStore := new(mocks.AddressStore)
		mockAddrStore.On("Delete", mock.Anything, 42).Return(nil)

		svc := service.NewAddressService(mockAddrStore, new(mocks.UserStore), nil, newTestLogger())

		err := svc.Delete(context.Background(), 42)

		require.NoError(t, err)
		mockAddrStore.AssertExpectations(t)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		mockAddrStore := new(mocks.AddressStore)
		mockAddrStore.On("Delete", mock.Anything, 4).Return(errors.New("connection reset"))

		svc := service.NewAddressService(mockAddrStore, new(mocks.UserStore), nil, newTestLogger())

		err := svc.Delete(context.Background(), 4)
		require.Error(t, err)
	})
}

func TestAddressService_List(t *testing.T) {
	t.Run("flattens owner summaries", func(t *testing.T) {
		mockAddrStore := new(mocks.AddressStore)
		mockUserStore := new(mocks.UserStore)

		mockAddrStore.On("FindAll", mock.Anything).
			Return([]*domain.Address{
				{ID: 4, FullAddress: "123 Main St", City: "New York", UserID: 3},
				{ID: 5, FullAddress: "456 Sunset Blvd", City: "Los Angeles", UserID: 3},
			}, nil)
		mockUserStore.On("FindByID", mock.Anything, 3).
			Return(&domain.User{ID: 3, FirstName: "John", LastName: "Doe", Email: "john@example.com"}, nil)

		svc := service.NewAddressService(mockAddrStore, mockUserStore, nil, newTestLogger())

		addrs, err := svc.List(context.Background())

		require.NoError(t, err)
		require.Len(t, addrs, 2)
		assert.Equal(t, "New York", addrs[0].City)
		require.NotNil(t, addrs[1].User)
		assert.Equal(t, 3, addrs[1].User.ID)
	})
}
