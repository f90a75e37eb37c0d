package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/hatembr/identity-api/internal/service"
	"github.com/hatembr/identity-api/internal/transfer"
)

// UserHandler handles user-related API requests.
type UserHandler struct {
	users     service.UserService
	validator *validator.Validate
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{
		users:     users,
		validator: validator.New(),
	}
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, users)
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, user)
}

// GetByUsername handles GET /api/users/username/{username}.
func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByUsername(r.Context(), pathUsername(r))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, user)
}

// Create handles POST /api/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req transfer.User
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.users.Create(r.Context(), &req)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, user)
}

// Update handles PUT /api/users.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req transfer.User
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := h.users.Update(r.Context(), &req)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, user)
}

// UpdateByID handles PUT /api/users/{id}.
func (h *UserHandler) UpdateByID(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req transfer.User
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := h.users.UpdateByID(r.Context(), id, &req)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusNoContent, nil)
}
