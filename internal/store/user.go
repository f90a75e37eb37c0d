package store

import (
	"context"
	"database/sql"

	"github.com/hatembr/identity-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// FindAll retrieves every user.
	FindAll(ctx context.Context) ([]*domain.User, error)

	// FindByID retrieves a user by id.
	// Returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id int) (*domain.User, error)

	// FindByUsername retrieves the user owning the credential with the
	// given username. Returns ErrUserNotFound if no such user exists.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// ExistsByID reports whether a user with the given id exists.
	ExistsByID(ctx context.Context, id int) (bool, error)

	// Save inserts a new user row and fills in the store-assigned id.
	Save(ctx context.Context, user *domain.User) error

	// Update overwrites an existing user row, including the credential
	// back-pointer. Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user row by id.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int) error

	// WithTx returns a UserStore bound to the given transaction.
	WithTx(tx *sql.Tx) UserStore
}
