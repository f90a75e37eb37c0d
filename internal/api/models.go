package api

// Request/response structures for the auth endpoints. The entity endpoints
// accept and return the transfer representations directly.

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	// Token is the signed JWT used for API authorization.
	Token string `json:"token"`

	// ExpiresAt is the ISO 8601 timestamp when the token expires.
	ExpiresAt string `json:"expires_at"`
}
