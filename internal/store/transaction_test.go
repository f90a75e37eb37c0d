package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hatembr/identity-api/internal/store"
)

func TestRunInTransaction_NilDB(t *testing.T) {
	t.Run("runs fn directly with a nil transaction", func(t *testing.T) {
		called := false
		err := store.RunInTransaction(context.Background(), nil,
			func(ctx context.Context, tx *sql.Tx) error {
				called = true
				assert.Nil(t, tx)
				return nil
			})
		assert.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("propagates fn error unchanged", func(t *testing.T) {
		sentinel := errors.New("boom")
		err := store.RunInTransaction(context.Background(), nil,
			func(ctx context.Context, tx *sql.Tx) error {
				return sentinel
			})
		assert.ErrorIs(t, err, sentinel)
	})
}
