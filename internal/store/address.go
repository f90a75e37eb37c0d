package store

import (
	"context"
	"database/sql"

	"github.com/hatembr/identity-api/internal/domain"
)

// AddressStore defines the interface for address data persistence.
type AddressStore interface {
	// FindAll retrieves every address.
	FindAll(ctx context.Context) ([]*domain.Address, error)

	// FindByID retrieves an address by id.
	// Returns ErrAddressNotFound if the address does not exist.
	FindByID(ctx context.Context, id int) (*domain.Address, error)

	// FindByUserID retrieves all addresses owned by the given user.
	FindByUserID(ctx context.Context, userID int) ([]*domain.Address, error)

	// Save inserts a new address row and fills in the store-assigned id.
	// Returns ErrInvalidEntity when the owner id violates the foreign key.
	Save(ctx context.Context, addr *domain.Address) error

	// Update overwrites an existing address's own fields; the user_id
	// column is never part of the update statement.
	// Returns ErrAddressNotFound if the address does not exist.
	Update(ctx context.Context, addr *domain.Address) error

	// Delete removes an address row by id. Deleting an absent address is a
	// no-op, mirroring the store's native delete semantics.
	Delete(ctx context.Context, id int) error

	// WithTx returns an AddressStore bound to the given transaction.
	WithTx(tx *sql.Tx) AddressStore
}
