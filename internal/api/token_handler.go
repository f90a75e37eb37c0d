package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/hatembr/identity-api/internal/service"
	"github.com/hatembr/identity-api/internal/transfer"
)

// VerificationTokenHandler handles verification-token API requests.
type VerificationTokenHandler struct {
	tokens    service.VerificationTokenService
	validator *validator.Validate
}

// NewVerificationTokenHandler creates a new VerificationTokenHandler with the
// given dependencies.
func NewVerificationTokenHandler(tokens service.VerificationTokenService) *VerificationTokenHandler {
	return &VerificationTokenHandler{
		tokens:    tokens,
		validator: validator.New(),
	}
}

// List handles GET /api/verification-tokens.
func (h *VerificationTokenHandler) List(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.tokens.List(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, tokens)
}

// Get handles GET /api/verification-tokens/{id}.
func (h *VerificationTokenHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.tokens.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, token)
}

// Create handles POST /api/verification-tokens.
func (h *VerificationTokenHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req transfer.VerificationToken
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, err := h.tokens.Create(r.Context(), &req)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, token)
}

// Update handles PUT /api/verification-tokens.
func (h *VerificationTokenHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req transfer.VerificationToken
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := h.tokens.Update(r.Context(), &req)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, token)
}

// UpdateByID handles PUT /api/verification-tokens/{id}.
func (h *VerificationTokenHandler) UpdateByID(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req transfer.VerificationToken
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := h.tokens.UpdateByID(r.Context(), id, &req)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, token)
}

// Delete handles DELETE /api/verification-tokens/{id}.
func (h *VerificationTokenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.tokens.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusNoContent, nil)
}
