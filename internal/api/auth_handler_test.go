package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hatembr/identity-api/internal/domain"
	"github.com/hatembr/identity-api/internal/mocks"
	"github.com/hatembr/identity-api/internal/service/auth"
	"github.com/hatembr/identity-api/internal/store"
)

func activeCredential(hash string) *domain.Credential {
	return &domain.Credential{
		ID:                    7,
		Username:              "johndoe",
		Password:              hash,
		Role:                  domain.RoleUser,
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
		UserID:                3,
	}
}

func postLogin(t *testing.T, handler *AuthHandler, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	handler.Login(recorder, req)
	return recorder
}

func TestLogin(t *testing.T) {
	hasher := auth.NewBcryptHasher()
	storedHash, err := hasher.Hash("plain123")
	require.NoError(t, err)

	expiresAt := time.Now().Add(time.Hour).UTC()

	t.Run("valid credentials receive a token", func(t *testing.T) {
		credStore := new(mocks.CredentialStore)
		credStore.On("FindByUsername", mock.Anything, "johndoe").
			Return(activeCredential(storedHash), nil)

		handler := NewAuthHandler(credStore, hasher, &mocks.JWTService{
			Token:     "signed-token",
			ExpiresAt: expiresAt,
		})

		recorder := postLogin(t, handler, map[string]any{
			"username": "johndoe",
			"password": "plain123",
		})

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp LoginResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "signed-token", resp.Token)
		assert.Equal(t, expiresAt.Format(time.RFC3339), resp.ExpiresAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		credStore := new(mocks.CredentialStore)
		credStore.On("FindByUsername", mock.Anything, "johndoe").
			Return(activeCredential(storedHash), nil)

		handler := NewAuthHandler(credStore, hasher, &mocks.JWTService{})

		recorder := postLogin(t, handler, map[string]any{
			"username": "johndoe",
			"password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("unknown username is indistinguishable from a wrong password", func(t *testing.T) {
		credStore := new(mocks.CredentialStore)
		credStore.On("FindByUsername", mock.Anything, "ghost").
			Return(nil, store.ErrCredentialNotFound)

		handler := NewAuthHandler(credStore, hasher, &mocks.JWTService{})

		recorder := postLogin(t, handler, map[string]any{
			"username": "ghost",
			"password": "plain123",
		})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var resp map[string]any
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "Invalid credentials", resp["error"])
	})

	t.Run("disabled account", func(t *testing.T) {
		cred := activeCredential(storedHash)
		cred.Enabled = false

		credStore := new(mocks.CredentialStore)
		credStore.On("FindByUsername", mock.Anything, "johndoe").Return(cred, nil)

		handler := NewAuthHandler(credStore, hasher, &mocks.JWTService{})

		recorder := postLogin(t, handler, map[string]any{
			"username": "johndoe",
			"password": "plain123",
		})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var resp map[string]any
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "Account disabled", resp["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		handler := NewAuthHandler(new(mocks.CredentialStore), hasher, &mocks.JWTService{})

		recorder := postLogin(t, handler, map[string]any{
			"username": "johndoe",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
