package api

import (
	"errors"
	"net/http"

	"github.com/hatembr/identity-api/internal/domain"
	"github.com/hatembr/identity-api/internal/service"
	"github.com/hatembr/identity-api/internal/service/auth"
	"github.com/hatembr/identity-api/internal/store"
	"github.com/hatembr/identity-api/internal/transfer"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error type. This prevents leaking internal error types or messages to
// clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrAccountDisabled),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrUsernameExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, service.ErrUserAlreadyHasCredential),
		errors.Is(err, service.ErrMissingUserRef),
		errors.Is(err, service.ErrMissingCredentialRef),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, transfer.ErrMapping),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrAccountDisabled):
		return "Account disabled"

	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrCredentialNotFound):
		return "Credential not found"

	case errors.Is(err, store.ErrAddressNotFound):
		return "Address not found"

	case errors.Is(err, store.ErrTokenNotFound):
		return "Verification token not found"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"

	case errors.Is(err, service.ErrUserAlreadyHasCredential):
		return "User already has a credential"

	case errors.Is(err, service.ErrMissingUserRef):
		return "A user reference with an id is required"

	case errors.Is(err, service.ErrMissingCredentialRef):
		return "A credential reference with an id is required"

	case errors.Is(err, transfer.ErrMapping):
		return "Request is missing a required nested field"

	case errors.Is(err, domain.ErrValidation):
		return "Invalid field values in request"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError maps an error from the service layer to a sanitized
// HTTP error response.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	RespondWithErrorAndLog(w, r, status, message, err)
}
