package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hatembr/identity-api/internal/api/shared"
)

// Aliases so handlers can call the shared responders without the package prefix.
var (
	RespondWithJSON        = shared.RespondWithJSON
	RespondWithError       = shared.RespondWithError
	RespondWithErrorAndLog = shared.RespondWithErrorAndLog
)

// DecodeJSON decodes the request body into dst, wrapping decode failures with
// a plain error.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// getPathID extracts a positive integer id from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, fmt.Errorf("%s is required", paramName)
	}

	id, err := strconv.Atoi(pathParam)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s has invalid format", paramName)
	}
	return id, nil
}

// pathUsername extracts the username path parameter.
func pathUsername(r *http.Request) string {
	return chi.URLParam(r, "username")
}
