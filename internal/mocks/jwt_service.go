package mocks

import (
	"context"
	"time"

	"github.com/hatembr/identity-api/internal/domain"
	"github.com/hatembr/identity-api/internal/service/auth"
)

// JWTService is a configurable fake of the auth.JWTService interface.
type JWTService struct {
	Token     string
	ExpiresAt time.Time
	Claims    *auth.Claims
	Err       error
}

// GenerateToken returns the configured token and expiry, or the configured
// error.
func (m *JWTService) GenerateToken(ctx context.Context, cred *domain.Credential) (string, time.Time, error) {
	if m.Err != nil {
		return "", time.Time{}, m.Err
	}
	return m.Token, m.ExpiresAt, nil
}

// ValidateToken returns the configured claims, or the configured error.
func (m *JWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Claims, nil
}
