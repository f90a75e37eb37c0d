package transfer_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatembr/identity-api/internal/domain"
	"github.com/hatembr/identity-api/internal/transfer"
)

func TestToUser(t *testing.T) {
	t.Run("wires both sides of the link", func(t *testing.T) {
		in := &transfer.User{
			ID:        3,
			FirstName: "John",
			LastName:  "Doe",
			Email:     "john@example.com",
			Credential: &transfer.Credential{
				ID:       7,
				Username: "johndoe",
				Password: "secret",
				Role:     string(domain.RoleUser),
				Enabled:  true,
			},
		}

		user, cred, err := transfer.ToUser(in)

		require.NoError(t, err)
		assert.Equal(t, 3, user.ID)
		assert.Equal(t, 3, cred.UserID)
		require.NotNil(t, user.CredentialID)
		assert.Equal(t, 7, *user.CredentialID)
	})

	t.Run("fails without a nested credential", func(t *testing.T) {
		_, _, err := transfer.ToUser(&transfer.User{
			ID:        3,
			FirstName: "John",
			LastName:  "Doe",
			Email:     "john@example.com",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, transfer.ErrMapping))
	})

	t.Run("an unsaved credential leaves the back-pointer unset", func(t *testing.T) {
		user, _, err := transfer.ToUser(&transfer.User{
			ID:        3,
			FirstName: "John",
			LastName:  "Doe",
			Email:     "john@example.com",
			Credential: &transfer.Credential{
				Username: "johndoe",
				Password: "secret",
			},
		})

		require.NoError(t, err)
		assert.Nil(t, user.CredentialID)
	})
}

func TestToUserOnly(t *testing.T) {
	user := transfer.ToUserOnly(&transfer.User{
		ID:        3,
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Credential: &transfer.Credential{
			ID:       7,
			Username: "johndoe",
		},
	})

	assert.Equal(t, 3, user.ID)
	assert.Nil(t, user.CredentialID, "nested credential must be ignored")
}

func TestToCredential(t *testing.T) {
	t.Run("takes the user id from the nested reference", func(t *testing.T) {
		cred, err := transfer.ToCredential(&transfer.Credential{
			Username: "johndoe",
			Password: "secret",
			Role:     string(domain.RoleUser),
			User:     &transfer.User{ID: 3},
		})

		require.NoError(t, err)
		assert.Equal(t, 3, cred.UserID)
		assert.Equal(t, "johndoe", cred.Username)
	})

	t.Run("fails without a nested user reference", func(t *testing.T) {
		_, err := transfer.ToCredential(&transfer.Credential{
			Username: "johndoe",
			Password: "secret",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, transfer.ErrMapping))
	})
}

func TestToCredentialOwnFields(t *testing.T) {
	cred, err := transfer.ToCredentialOwnFields(&transfer.Credential{
		ID:       7,
		Username: "johndoe",
		Password: "secret",
		Role:     string(domain.RoleAdmin),
		Enabled:  true,
		User:     &transfer.User{ID: 99},
	})

	require.NoError(t, err)
	assert.Equal(t, 7, cred.ID)
	assert.Equal(t, domain.RoleAdmin, cred.Role)
	assert.Equal(t, 0, cred.UserID, "relation fields must stay untouched")
}

func TestToToken(t *testing.T) {
	expiry := time.Now().Add(24 * time.Hour).UTC()

	t.Run("takes the credential id from the nested reference", func(t *testing.T) {
		tok, err := transfer.ToToken(&transfer.VerificationToken{
			Token:      "abc",
			ExpireDate: expiry,
			Credential: &transfer.Credential{ID: 7},
		})

		require.NoError(t, err)
		assert.Equal(t, 7, tok.CredentialID)
	})

	t.Run("fails without a nested credential", func(t *testing.T) {
		_, err := transfer.ToToken(&transfer.VerificationToken{
			Token:      "abc",
			ExpireDate: expiry,
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, transfer.ErrMapping))
	})

	t.Run("own-fields variant keeps the relation untouched", func(t *testing.T) {
		tok := transfer.ToTokenOwnFields(&transfer.VerificationToken{
			ID:         11,
			Token:      "abc",
			ExpireDate: expiry,
			Credential: &transfer.Credential{ID: 99},
		})

		assert.Equal(t, 11, tok.ID)
		assert.Equal(t, 0, tok.CredentialID)
	})
}

func TestSelectiveRoundTrip(t *testing.T) {
	// Forward-mapping an entity and reversing it with the selective variant
	// must reproduce every scalar field; the Equal methods already exclude
	// the relation fields the selective variants leave untouched.
	expiry := time.Now().Add(24 * time.Hour).UTC()

	t.Run("user", func(t *testing.T) {
		in := &domain.User{
			ID:        3,
			FirstName: "John",
			LastName:  "Doe",
			ImageURL:  "https://img.example.com/john.png",
			Email:     "john@example.com",
			Phone:     "+1-555-0100",
		}

		out := transfer.ToUserOnly(transfer.FromUser(in, nil))

		assert.True(t, in.Equal(out))
	})

	t.Run("credential", func(t *testing.T) {
		in := &domain.Credential{
			ID:                    7,
			Username:              "johndoe",
			Password:              "$2a$10$storedhash",
			Role:                  domain.RoleAdmin,
			Enabled:               true,
			AccountNonExpired:     true,
			AccountNonLocked:      false,
			CredentialsNonExpired: true,
			UserID:                3,
		}

		out, err := transfer.ToCredentialOwnFields(transfer.FromCredential(in, nil, nil))

		require.NoError(t, err)
		assert.True(t, in.Equal(out))
		assert.Equal(t, in.Password, out.Password)
	})

	t.Run("verification token", func(t *testing.T) {
		in := &domain.VerificationToken{
			ID:           11,
			Token:        "abc",
			ExpireDate:   expiry,
			CredentialID: 7,
		}

		out := transfer.ToTokenOwnFields(transfer.FromToken(in, nil))

		assert.True(t, in.Equal(out))
	})
}

func TestFromCredential(t *testing.T) {
	expiry := time.Now().Add(24 * time.Hour).UTC()

	cred := &domain.Credential{
		ID:       7,
		Username: "johndoe",
		Role:     domain.RoleUser,
		UserID:   3,
	}
	user := &domain.User{ID: 3, FirstName: "John", LastName: "Doe", Email: "john@example.com"}
	tokens := []*domain.VerificationToken{
		{ID: 11, Token: "abc", ExpireDate: expiry, CredentialID: 7},
	}

	out := transfer.FromCredential(cred, user, tokens)

	require.NotNil(t, out.User)
	assert.Equal(t, 3, out.User.ID)
	assert.Nil(t, out.User.Credential, "user summary must not recurse")
	require.Len(t, out.VerificationTokens, 1)
	assert.Nil(t, out.VerificationTokens[0].Credential, "token summary must not recurse")
}

func TestFromUser(t *testing.T) {
	t.Run("without credential", func(t *testing.T) {
		out := transfer.FromUser(&domain.User{ID: 3, FirstName: "John"}, nil)
		assert.Nil(t, out.Credential)
	})

	t.Run("nil user maps to nil", func(t *testing.T) {
		assert.Nil(t, transfer.FromUser(nil, nil))
	})
}

func TestFromToken(t *testing.T) {
	expiry := time.Now().Add(24 * time.Hour).UTC()
	out := transfer.FromToken(
		&domain.VerificationToken{ID: 11, Token: "abc", ExpireDate: expiry, CredentialID: 7},
		&domain.Credential{ID: 7, Username: "johndoe", UserID: 3},
	)

	require.NotNil(t, out.Credential)
	assert.Equal(t, 7, out.Credential.ID)
	assert.Nil(t, out.Credential.User, "credential summary must not recurse")
}
