package domain

import (
	"fmt"
	"time"
)

// VerificationToken validation errors
var (
	ErrEmptyToken          = fmt.Errorf("%w: token cannot be empty", ErrValidation)
	ErrMissingCredentialID = fmt.Errorf("%w: verification token requires an owning credential id", ErrValidation)
	ErrMissingTokenExpiry  = fmt.Errorf("%w: verification token requires an expiration date", ErrValidation)
)

// VerificationToken is a one-time token owned by exactly one credential.
// The owning credential is referenced by id and immutable after creation;
// the credential cascades its tokens on delete.
type VerificationToken struct {
	ID         int       `json:"id"`
	Token      string    `json:"token"`
	ExpireDate time.Time `json:"expire_date"`

	// CredentialID references the owning credential. Immutable after creation.
	CredentialID int `json:"-"`
}

// Validate checks the VerificationToken's fields.
func (t *VerificationToken) Validate() error {
	if t.Token == "" {
		return ErrEmptyToken
	}
	if t.ExpireDate.IsZero() {
		return ErrMissingTokenExpiry
	}
	if t.CredentialID == 0 {
		return ErrMissingCredentialID
	}
	return nil
}

// Expired reports whether the token's expiration date has passed.
func (t *VerificationToken) Expired(now time.Time) bool {
	return now.After(t.ExpireDate)
}

// Equal reports business-key equality, excluding the credential relation.
func (t *VerificationToken) Equal(other *VerificationToken) bool {
	if other == nil {
		return false
	}
	return t.ID == other.ID &&
		t.Token == other.Token &&
		t.ExpireDate.Equal(other.ExpireDate)
}
