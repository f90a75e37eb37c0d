package auth

import "errors"

// Authentication errors surfaced by the login flow and token validation.
var (
	// ErrInvalidCredentials is returned when the username is unknown or the
	// password does not match. The two cases are deliberately
	// indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled is returned when any account-status flag denies
	// authentication for an otherwise valid credential.
	ErrAccountDisabled = errors.New("account disabled")

	// ErrInvalidToken is returned when a token fails signature or claims
	// validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token expired")
)
