package service

import "errors"

// Validation errors surfaced by the account services. These are distinct
// from the store's not-found and duplicate sentinels: they describe requests
// that are structurally complete but violate a relationship rule.
var (
	// ErrUserAlreadyHasCredential is returned when a credential create
	// targets a user that already owns one. The 1:1 invariant makes this a
	// different failure from a username collision.
	ErrUserAlreadyHasCredential = errors.New("user already has a credential")

	// ErrMissingUserRef is returned when an operation requires a nested
	// user reference with an id and none was supplied.
	ErrMissingUserRef = errors.New("user reference with id is required")

	// ErrMissingCredentialRef is returned when an operation requires a
	// nested credential reference with an id and none was supplied.
	ErrMissingCredentialRef = errors.New("credential reference with id is required")
)
