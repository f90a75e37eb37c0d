package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hatembr/identity-api/internal/domain"
	"github.com/hatembr/identity-api/internal/mocks"
	"github.com/hatembr/identity-api/internal/service"
	"github.com/hatembr/identity-api/internal/store"
	"github.com/hatembr/identity-api/internal/transfer"
)

func newCredentialService(
	credStore *mocks.CredentialStore,
	userStore *mocks.UserStore,
	tokenStore *mocks.VerificationTokenStore,
	hasher *mocks.PasswordHasher,
) service.CredentialService {
	return service.NewCredentialService(credStore, userStore, tokenStore, hasher, nil, newTestLogger())
}

func TestCredentialService_Create(t *testing.T) {
	t.Run("hashes the password and links both sides", func(t *testing.T) {
		mockCredStore := new(mocks.CredentialStore)
		mockUserStore := new(mocks.UserStore)
		mockHasher := new(mocks.PasswordHasher)

		mockUserStore.On("FindByID", mock.Anything, 3).
			Return(&domain.User{ID: 3, FirstName: "John", LastName: "Doe", Email: "john@example.com"}, nil)
		mockCredStore.On("ExistsByUserID", mock.Anything, 3).Return(false, nil)
		mockCredStore.On("ExistsByUsername", mock.Anything, "johndoe").Return(false, nil)
		mockHasher.On("Hash", "plain123").Return("$2a$10$freshhash", nil)

		mockCredStore.On("Save", mock.Anything, mock.MatchedBy(func(c *domain.Credential) bool {
			return c.UserID == 3 &&
				c.Username == "johndoe" &&
				c.Password == "$2a$10$freshhash"
		})).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Credential).ID = 9
		})
		mockUserStore.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == 3 && u.CredentialID != nil && *u.CredentialID == 9
		})).Return(nil)

		svc := newCredentialService(mockCredStore, mockUserStore, new(mocks.VerificationTokenStore), mockHasher)

		created, err := svc.Create(context.Background(), &transfer.Credential{
			ID:       55, // caller-supplied ids are ignored
			Username: "johndoe",
			Password: "plain123",
			Role:     string(domain.RoleUser),
			Enabled:  true,
			User:     &transfer.User{ID: 3},
		})

		require.NoError(t, err)
		assert.Equal(t, 9, created.ID)
		assert.NotEqual(t, "plain123", created.Password)
		require.NotNil(t, created.User)
		assert.Equal(t, 3, created.User.ID)
		mockCredStore.AssertExpectations(t)
		mockUserStore.AssertExpectations(t)
		mockHasher.AssertExpectations(t)
	})

	t.Run("missing user reference", func(t *testing.T) {
		svc := newCredentialService(
			new(mocks.CredentialStore),
			new(mocks.UserStore),
			new(mocks.VerificationTokenStore),
			new(mocks.PasswordHasher),
		)

		_, err := svc.Create(context.Background(), &transfer.Credential{
			Username: "johndoe",
			Password: "plain123",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrMissingUserRef))
	})

	t.Run("referenced user does not exist", func(t *testing.T) {
		mockCredStore := new(mocks.CredentialStore)
		mockUserStore := new(mocks.UserStore)

		mockUserStore.On("FindByID", mock.Anything, 42).Return(nil, store.ErrUserNotFound)

		svc := newCredentialService(mockCredStore, mockUserStore, new(mocks.VerificationTokenStore), new(mocks.PasswordHasher))

		_, err := svc.Create(context.Background(), &transfer.Credential{
			Username: "johndoe",
			Password: "plain123",
			User:     &transfer.User{ID: 42},
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrUserNotFound))
		mockCredStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("ownership conflict wins over username conflict", func(t *testing.T) {
		mockCredStore := new(mocks.CredentialStore)
		mockUserStore := new(mocks.UserStore)

		mockUserStore.On("FindByID", mock.Anything, 3).
			Return(&domain.User{ID: 3, FirstName: "John", LastName: "Doe", Email: "john@example.com"}, nil)
		mockCredStore.On("ExistsByUserID", mock.Anything, 3).Return(true, nil)

		svc := newCredentialService(mockCredStore, mockUserStore, new(mocks.VerificationTokenStore), new(mocks.PasswordHasher))

		// The username is also taken, but the ownership check runs first.
		_, err := svc.Create(context.Background(), &transfer.Credential{
			Username: "johndoe",
			Password: "plain123",
			User:     &transfer.User{ID: 3},
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrUserAlreadyHasCredential))
		mockCredStore.AssertNotCalled(t, "ExistsByUsername", mock.Anything, mock.Anything)
		mockCredStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("username taken", func(t *testing.T) {
		mockCredStore := new(mocks.CredentialStore)
		mockUserStore := new(mocks.UserStore)
		mockHasher := new(mocks.PasswordHasher)

		mockUserStore.On("FindByID", mock.Anything, 3).
			Return(&domain.User{ID: 3, FirstName: "John", LastName: "Doe", Email: "john@example.com"}, nil)
		mockCredStore.On("ExistsByUserID", mock.Anything, 3).Return(false, nil)
		mockCredStore.On("ExistsByUsername", mock.Anything, "johndoe").Return(true, nil)

		svc := newCredentialService(mockCredStore, mockUserStore, new(mocks.VerificationTokenStore), mockHasher)

		_, err := svc.Create(context.Background(), &transfer.Credential{
			Username: "johndoe",
			Password: "plain123",
			User:     &transfer.User{ID: 3},
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrUsernameExists))
		mockHasher.AssertNotCalled(t, "Hash", mock.Anything)
		mockCredStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCredentialService_Update(t *testing.T) {
	t.Run("preserves the user association", func(t *testing.T) {
		mockCredStore := new(mocks.CredentialStore)
		mockUserStore := new(mocks.UserStore)
		mockTokenStore := new(mocks.VerificationTokenStore)

		mockCredStore.On("FindByID", mock.Anything, 7).
			Return(&domain.Credential{
				ID: 7, Username: "johndoe", Password: "$2a$10$storedhash",
				Role: domain.RoleUser, UserID: 3,
			}, nil)
		mockCredStore.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Credential) bool {
			return c.ID == 7 && c.UserID == 3 && c.Username == "johndoe2"
		})).Return(nil)
		mockUserStore.On("FindByID", mock.Anything, 3).
			Return(&domain.User{ID: 3, FirstName: "John", LastName: "Doe", Email: "john@example.com"}, nil)
		mockTokenStore.On("FindByCredentialID", mock.Anything, 7).
			Return([]*domain.VerificationToken{}, nil)

		svc := newCredentialService(mockCredStore, mockUserStore, mockTokenStore, new(mocks.PasswordHasher))

		// The payload references a different user; it must not re-link.
		updated, err := svc.Update(context.Background(), &transfer.Credential{
			ID:       7,
			Username: "johndoe2",
			Role:     string(domain.RoleUser),
			Enabled:  true,
			User:     &transfer.User{ID: 99},
		})

		require.NoError(t, err)
		require.NotNil(t, updated.User)
		assert.Equal(t, 3, updated.User.ID)
		mockCredStore.AssertExpectations(t)
	})

	t.Run("re-hashes a new password, keeps the old hash otherwise", func(t *testing.T) {
		mockCredStore := new(mocks.CredentialStore)
		mockUserStore := new(mocks.UserStore)
		mockTokenStore := new(mocks.VerificationTokenStore)
		mockHasher := new(mocks.PasswordHasher)

		mockCredStore.On("FindByID", mock.Anything, 7).
			Return(&domain.Credential{ID: 7, Username: "johndoe", Password: "$2a$10$storedhash", UserID: 3}, nil)
		mockHasher.On("Hash", "newpass").Return("$2a$10$freshhash", nil)
		mockCredStore.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Credential) bool {
			return c.Password == "$2a$10$freshhash"
		})).Return(nil)
		mockUserStore.On("FindByID", mock.Anything, 3).
			Return(&domain.User{ID: 3, FirstName: "John", LastName: "Doe", Email: "john@example.com"}, nil)
		mockTokenStore.On("FindByCredentialID", mock.Anything, 7).
			Return([]*domain.VerificationToken{}, nil)

		svc := newCredentialService(mockCredStore, mockUserStore, mockTokenStore, mockHasher)

		_, err := svc.Update(context.Background(), &transfer.Credential{
			ID:       7,
			Username: "johndoe",
			Password: "newpass",
		})

		require.NoError(t, err)
		mockHasher.AssertExpectations(t)
	})

	t.Run("credential not found", func(t *testing.T) {
		mockCredStore := new(mocks.CredentialStore)
		mockCredStore.On("FindByID", mock.Anything, 42).Return(nil, store.ErrCredentialNotFound)

		svc := newCredentialService(mockCredStore, new(mocks.UserStore), new(mocks.VerificationTokenStore), new(mocks.PasswordHasher))

		_, err := svc.UpdateByID(context.Background(), 42, &transfer.Credential{Username: "ghost"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrCredentialNotFound))
	})
}

func TestCredentialService_Delete(t *testing.T) {
	t.Run("clears the owner back-pointer before deleting", func(t *testing.T) {
		mockCredStore := new(mocks.CredentialStore)
		mockUserStore := new(mocks.UserStore)

		credID := 7
		mockCredStore.On("FindByID", mock.Anything, 7).
			Return(&domain.Credential{ID: 7, Username: "johndoe", UserID: 3}, nil)
		mockUserStore.On("FindByID", mock.Anything, 3).
			Return(&domain.User{
				ID: 3, FirstName: "John", LastName: "Doe",
				Email: "john@example.com", CredentialID: &credID,
			}, nil)
		mockUserStore.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == 3 && u.CredentialID == nil
		})).Return(nil)
		mockCredStore.On("Delete", mock.Anything, 7).Return(nil)

		svc := newCredentialService(mockCredStore, mockUserStore, new(mocks.VerificationTokenStore), new(mocks.PasswordHasher))

		err := svc.Delete(context.Background(), 7)

		require.NoError(t, err)
		mockCredStore.AssertExpectations(t)
		mockUserStore.AssertExpectations(t)
	})

	t.Run("a missing owner is tolerated", func(t *testing.T) {
		mockCredStore := new(mocks.CredentialStore)
		mockUserStore := new(mocks.UserStore)

		mockCredStore.On("FindByID", mock.Anything, 7).
			Return(&domain.Credential{ID: 7, Username: "johndoe", UserID: 3}, nil)
		mockUserStore.On("FindByID", mock.Anything, 3).Return(nil, store.ErrUserNotFound)
		mockCredStore.On("Delete", mock.Anything, 7).Return(nil)

		svc := newCredentialService(mockCredStore, mockUserStore, new(mocks.VerificationTokenStore), new(mocks.PasswordHasher))

		err := svc.Delete(context.Background(), 7)

		require.NoError(t, err)
		mockCredStore.AssertExpectations(t)
	})

	t.Run("credential not found", func(t *testing.T) {
		mockCredStore := new(mocks.CredentialStore)
		mockCredStore.On("FindByID", mock.Anything, 42).Return(nil, store.ErrCredentialNotFound)

		svc := newCredentialService(mockCredStore, new(mocks.UserStore), new(mocks.VerificationTokenStore), new(mocks.PasswordHasher))

		err := svc.Delete(context.Background(), 42)

		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrCredentialNotFound))
	})
}

func TestCredentialService_GetByID(t *testing.T) {
	t.Run("flattens owner and tokens", func(t *testing.T) {
		mockCredStore := new(mocks.CredentialStore)
		mockUserStore := new(mocks.UserStore)
		mockTokenStore := new(mocks.VerificationTokenStore)

		expiry := time.Now().Add(24 * time.Hour).UTC()
		mockCredStore.On("FindByID", mock.Anything, 7).
			Return(&domain.Credential{ID: 7, Username: "johndoe", Role: domain.RoleUser, UserID: 3}, nil)
		mockUserStore.On("FindByID", mock.Anything, 3).
			Return(&domain.User{ID: 3, FirstName: "John", LastName: "Doe", Email: "john@example.com"}, nil)
		mockTokenStore.On("FindByCredentialID", mock.Anything, 7).
			Return([]*domain.VerificationToken{
				{ID: 11, Token: "abc", ExpireDate: expiry, CredentialID: 7},
			}, nil)

		svc := newCredentialService(mockCredStore, mockUserStore, mockTokenStore, new(mocks.PasswordHasher))

		cred, err := svc.GetByID(context.Background(), 7)

		require.NoError(t, err)
		require.NotNil(t, cred.User)
		assert.Equal(t, 3, cred.User.ID)
		assert.Nil(t, cred.User.Credential, "user summary must not recurse")
		require.Len(t, cred.VerificationTokens, 1)
		assert.Equal(t, "abc", cred.VerificationTokens[0].Token)
		assert.Nil(t, cred.VerificationTokens[0].Credential, "token summary must not recurse")
	})

	t.Run("credential not found", func(t *testing.T) {
		mockCredStore := new(mocks.CredentialStore)
		mockCredStore.On("FindByID", mock.Anything, 42).Return(nil, store.ErrCredentialNotFound)

		svc := newCredentialService(mockCredStore, new(mocks.UserStore), new(mocks.VerificationTokenStore), new(mocks.PasswordHasher))

		_, err := svc.GetByID(context.Background(), 42)

		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrCredentialNotFound))
	})
}
