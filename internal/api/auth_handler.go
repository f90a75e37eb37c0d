package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hatembr/identity-api/internal/service/auth"
	"github.com/hatembr/identity-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	credentialStore store.CredentialStore
	passwordHasher  auth.PasswordHasher
	jwtService      auth.JWTService
	validator       *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	credentialStore store.CredentialStore,
	passwordHasher auth.PasswordHasher,
	jwtService auth.JWTService,
) *AuthHandler {
	return &AuthHandler{
		credentialStore: credentialStore,
		passwordHasher:  passwordHasher,
		jwtService:      jwtService,
		validator:       validator.New(),
	}
}

// Login handles POST /api/auth/login. An unknown username and a wrong
// password are indistinguishable to the caller; only a disabled or locked
// account is reported as such.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	credential, err := h.credentialStore.FindByUsername(ctx, req.Username)
	if err != nil {
		if store.IsNotFoundError(err) {
			HandleServiceError(w, r, auth.ErrInvalidCredentials)
			return
		}
		HandleServiceError(w, r, err)
		return
	}

	if !credential.Active() {
		HandleServiceError(w, r, auth.ErrAccountDisabled)
		return
	}

	if err := h.passwordHasher.Compare(credential.Password, req.Password); err != nil {
		HandleServiceError(w, r, auth.ErrInvalidCredentials)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(ctx, credential)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}
