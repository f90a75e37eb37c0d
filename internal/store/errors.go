package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. The entity-specific not found errors below wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity (e.g., a credential with a taken username).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or a
	// schema constraint before being stored.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails to
	// commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrCredentialNotFound indicates that the requested credential does not exist.
	ErrCredentialNotFound = fmt.Errorf("%w: credential", ErrNotFound)

	// ErrAddressNotFound indicates that the requested address does not exist.
	ErrAddressNotFound = fmt.Errorf("%w: address", ErrNotFound)

	// ErrTokenNotFound indicates that the requested verification token does not exist.
	ErrTokenNotFound = fmt.Errorf("%w: verification token", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrUsernameExists indicates that a credential with the given username
	// already exists.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
