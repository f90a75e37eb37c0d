package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/hatembr/identity-api/internal/service"
	"github.com/hatembr/identity-api/internal/transfer"
)

// AddressHandler handles address-related API requests.
type AddressHandler struct {
	addresses service.AddressService
	validator *validator.Validate
}

// NewAddressHandler creates a new AddressHandler with the given dependencies.
func NewAddressHandler(addresses service.AddressService) *AddressHandler {
	return &AddressHandler{
		addresses: addresses,
		validator: validator.New(),
	}
}

// List handles GET /api/addresses.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.addresses.List(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, addresses)
}

// Get handles GET /api/addresses/{id}.
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	address, err := h.addresses.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, address)
}

// Create handles POST /api/addresses.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req transfer.Address
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	address, err := h.addresses.Create(r.Context(), &req)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, address)
}

// Update handles PUT /api/addresses.
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req transfer.Address
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	address, err := h.addresses.Update(r.Context(), &req)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, address)
}

// UpdateByID handles PUT /api/addresses/{id}.
func (h *AddressHandler) UpdateByID(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req transfer.Address
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	address, err := h.addresses.UpdateByID(r.Context(), id, &req)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, address)
}

// Delete handles DELETE /api/addresses/{id}.
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.addresses.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusNoContent, nil)
}
