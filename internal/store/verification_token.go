package store

import (
	"context"
	"database/sql"

	"github.com/hatembr/identity-api/internal/domain"
)

// VerificationTokenStore defines the interface for token data persistence.
type VerificationTokenStore interface {
	// FindAll retrieves every verification token.
	FindAll(ctx context.Context) ([]*domain.VerificationToken, error)

	// FindByID retrieves a verification token by id.
	// Returns ErrTokenNotFound if the token does not exist.
	FindByID(ctx context.Context, id int) (*domain.VerificationToken, error)

	// FindByCredentialID retrieves all tokens owned by the given credential.
	FindByCredentialID(ctx context.Context, credentialID int) ([]*domain.VerificationToken, error)

	// Save inserts a new token row and fills in the store-assigned id.
	// Returns ErrInvalidEntity when the owning credential id violates the
	// foreign key.
	Save(ctx context.Context, tok *domain.VerificationToken) error

	// Update overwrites an existing token's own fields; the credential_id
	// column is never part of the update statement.
	// Returns ErrTokenNotFound if the token does not exist.
	Update(ctx context.Context, tok *domain.VerificationToken) error

	// Delete removes a token row by id.
	// Returns ErrTokenNotFound if the token does not exist.
	Delete(ctx context.Context, id int) error

	// WithTx returns a VerificationTokenStore bound to the given transaction.
	WithTx(tx *sql.Tx) VerificationTokenStore
}
