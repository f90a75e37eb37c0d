package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatembr/identity-api/internal/service/auth"
)

func TestBcryptHasher(t *testing.T) {
	hasher := auth.NewBcryptHasher()

	t.Run("hash and compare round trip", func(t *testing.T) {
		hash, err := hasher.Hash("plain123")

		require.NoError(t, err)
		assert.NotEqual(t, "plain123", hash)
		assert.NoError(t, hasher.Compare(hash, "plain123"))
	})

	t.Run("wrong password fails comparison", func(t *testing.T) {
		hash, err := hasher.Hash("plain123")

		require.NoError(t, err)
		assert.Error(t, hasher.Compare(hash, "wrong"))
	})

	t.Run("hashes are salted", func(t *testing.T) {
		first, err := hasher.Hash("plain123")
		require.NoError(t, err)
		second, err := hasher.Hash("plain123")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
