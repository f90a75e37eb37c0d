package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/hatembr/identity-api/internal/service"
	"github.com/hatembr/identity-api/internal/transfer"
)

// CredentialHandler handles credential-related API requests.
type CredentialHandler struct {
	credentials service.CredentialService
	validator   *validator.Validate
}

// NewCredentialHandler creates a new CredentialHandler with the given dependencies.
func NewCredentialHandler(credentials service.CredentialService) *CredentialHandler {
	return &CredentialHandler{
		credentials: credentials,
		validator:   validator.New(),
	}
}

// List handles GET /api/credentials.
func (h *CredentialHandler) List(w http.ResponseWriter, r *http.Request) {
	credentials, err := h.credentials.List(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, credentials)
}

// Get handles GET /api/credentials/{id}.
func (h *CredentialHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	credential, err := h.credentials.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, credential)
}

// GetByUsername handles GET /api/credentials/username/{username}.
func (h *CredentialHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	credential, err := h.credentials.GetByUsername(r.Context(), pathUsername(r))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, credential)
}

// Create handles POST /api/credentials.
func (h *CredentialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req transfer.Credential
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	credential, err := h.credentials.Create(r.Context(), &req)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, credential)
}

// Update handles PUT /api/credentials.
func (h *CredentialHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req transfer.Credential
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	credential, err := h.credentials.Update(r.Context(), &req)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, credential)
}

// UpdateByID handles PUT /api/credentials/{id}.
func (h *CredentialHandler) UpdateByID(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req transfer.Credential
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	credential, err := h.credentials.UpdateByID(r.Context(), id, &req)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, credential)
}

// Delete handles DELETE /api/credentials/{id}.
func (h *CredentialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.credentials.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusNoContent, nil)
}
