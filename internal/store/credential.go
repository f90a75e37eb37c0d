package store

import (
	"context"
	"database/sql"

	"github.com/hatembr/identity-api/internal/domain"
)

// CredentialStore defines the interface for credential data persistence.
type CredentialStore interface {
	// FindAll retrieves every credential.
	FindAll(ctx context.Context) ([]*domain.Credential, error)

	// FindByID retrieves a credential by id.
	// Returns ErrCredentialNotFound if the credential does not exist.
	FindByID(ctx context.Context, id int) (*domain.Credential, error)

	// FindByUsername retrieves a credential by its unique username.
	// Returns ErrCredentialNotFound if the credential does not exist.
	FindByUsername(ctx context.Context, username string) (*domain.Credential, error)

	// FindByUserID retrieves the credential owned by the given user.
	// Returns ErrCredentialNotFound if the user owns none.
	FindByUserID(ctx context.Context, userID int) (*domain.Credential, error)

	// ExistsByUsername reports whether a credential with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByUserID reports whether the given user already owns a credential.
	ExistsByUserID(ctx context.Context, userID int) (bool, error)

	// Save inserts a new credential row and fills in the store-assigned id.
	// Returns ErrUsernameExists on a username collision and ErrInvalidEntity
	// when the owning user id violates the foreign key.
	Save(ctx context.Context, cred *domain.Credential) error

	// Update overwrites an existing credential's own fields. The user_id
	// column is never part of the update statement: the association is
	// immutable at the schema access level, not just by service policy.
	// Returns ErrCredentialNotFound if the credential does not exist.
	Update(ctx context.Context, cred *domain.Credential) error

	// Delete removes a credential row by id. Owned verification tokens are
	// cascaded by the schema. Returns ErrCredentialNotFound if the
	// credential does not exist.
	Delete(ctx context.Context, id int) error

	// WithTx returns a CredentialStore bound to the given transaction.
	WithTx(tx *sql.Tx) CredentialStore
}
