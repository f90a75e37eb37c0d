// Package transfer holds the wire-facing representations of the identity
// entities and the conversions between the two. Each reverse conversion is a
// distinct named function with a documented subset of fields it touches:
// the selective ("own fields") variants deliberately omit relation fields so
// a caller's stale copy of an association can never overwrite the stored one.
package transfer

import (
	"errors"
	"fmt"
	"time"

	"github.com/hatembr/identity-api/internal/domain"
)

// ErrMapping is the sentinel for every reverse-mapping failure. Concrete
// failures wrap it with the missing nested field.
var ErrMapping = errors.New("mapping failed")

// User is the transfer form of a user, nesting its credential when present.
type User struct {
	ID         int         `json:"id,omitempty"`
	FirstName  string      `json:"first_name"         validate:"required"`
	LastName   string      `json:"last_name"          validate:"required"`
	ImageURL   string      `json:"image_url,omitempty"`
	Email      string      `json:"email"              validate:"required,email"`
	Phone      string      `json:"phone,omitempty"`
	Credential *Credential `json:"credential,omitempty"`
}

// Credential is the transfer form of a credential. The nested user is a
// summary only: its Credential field is always nil to avoid recursion.
// Tokens carry id/token/expiry only for the same reason.
type Credential struct {
	ID                    int                 `json:"id,omitempty"`
	Username              string              `json:"username" validate:"required"`
	Password              string              `json:"password,omitempty"`
	Role                  string              `json:"role"`
	Enabled               bool                `json:"enabled"`
	AccountNonExpired     bool                `json:"account_non_expired"`
	AccountNonLocked      bool                `json:"account_non_locked"`
	CredentialsNonExpired bool                `json:"credentials_non_expired"`
	User                  *User               `json:"user,omitempty"`
	VerificationTokens    []VerificationToken `json:"verification_tokens,omitempty"`
}

// Address is the transfer form of an address, nesting a user summary.
type Address struct {
	ID          int    `json:"id,omitempty"`
	FullAddress string `json:"full_address" validate:"required"`
	PostalCode  string `json:"postal_code,omitempty"`
	City        string `json:"city"         validate:"required"`
	User        *User  `json:"user,omitempty"`
}

// VerificationToken is the transfer form of a verification token.
type VerificationToken struct {
	ID         int         `json:"id,omitempty"`
	Token      string      `json:"token,omitempty"`
	ExpireDate time.Time   `json:"expire_date"`
	Credential *Credential `json:"credential,omitempty"`
}

// FromUser flattens a user and its credential (nil when absent) into the
// transfer form.
func FromUser(user *domain.User, cred *domain.Credential) *User {
	if user == nil {
		return nil
	}
	t := &User{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		ImageURL:  user.ImageURL,
		Email:     user.Email,
		Phone:     user.Phone,
	}
	if cred != nil {
		t.Credential = credentialScalars(cred)
	}
	return t
}

// FromCredential flattens a credential, its owning user summary and its
// verification tokens into the transfer form. The user summary never
// re-includes the credential; tokens never re-include the credential.
func FromCredential(cred *domain.Credential, user *domain.User, tokens []*domain.VerificationToken) *Credential {
	if cred == nil {
		return nil
	}
	t := credentialScalars(cred)
	t.User = FromUser(user, nil)
	for _, tok := range tokens {
		t.VerificationTokens = append(t.VerificationTokens, VerificationToken{
			ID:         tok.ID,
			Token:      tok.Token,
			ExpireDate: tok.ExpireDate,
		})
	}
	return t
}

// FromAddress flattens an address and its owner summary into the transfer form.
func FromAddress(addr *domain.Address, user *domain.User) *Address {
	if addr == nil {
		return nil
	}
	return &Address{
		ID:          addr.ID,
		FullAddress: addr.FullAddress,
		PostalCode:  addr.PostalCode,
		City:        addr.City,
		User:        FromUser(user, nil),
	}
}

// FromToken flattens a verification token and its owning credential into the
// transfer form.
func FromToken(tok *domain.VerificationToken, cred *domain.Credential) *VerificationToken {
	if tok == nil {
		return nil
	}
	t := &VerificationToken{
		ID:         tok.ID,
		Token:      tok.Token,
		ExpireDate: tok.ExpireDate,
	}
	if cred != nil {
		t.Credential = credentialScalars(cred)
	}
	return t
}

// ToUser is the full reverse mapping: it rebuilds the user together with its
// credential and wires both sides of the link. It fails when the nested
// credential is absent because the credential side of the relation cannot be
// constructed without it.
func ToUser(t *User) (*domain.User, *domain.Credential, error) {
	if t == nil {
		return nil, nil, fmt.Errorf("%w: user transfer is nil", ErrMapping)
	}
	if t.Credential == nil {
		return nil, nil, fmt.Errorf("%w: user %d has no nested credential", ErrMapping, t.ID)
	}

	user := ToUserOnly(t)
	cred, err := ToCredentialOwnFields(t.Credential)
	if err != nil {
		return nil, nil, err
	}

	// Both directions of the 1:1 link.
	cred.UserID = user.ID
	if cred.ID != 0 {
		id := cred.ID
		user.CredentialID = &id
	}

	return user, cred, nil
}

// ToUserOnly rebuilds the user alone, ignoring any nested credential. Save
// paths use it because credential creation is a separate, independently
// validated operation.
func ToUserOnly(t *User) *domain.User {
	return &domain.User{
		ID:        t.ID,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		ImageURL:  t.ImageURL,
		Email:     t.Email,
		Phone:     t.Phone,
	}
}

// ToCredential rebuilds a credential from scalars plus the id of the nested
// user reference. It does not resolve the user: callers must attach a real
// fetched user before persisting. It fails when the nested user reference is
// absent.
func ToCredential(t *Credential) (*domain.Credential, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: credential transfer is nil", ErrMapping)
	}
	if t.User == nil {
		return nil, fmt.Errorf("%w: credential %d has no nested user reference", ErrMapping, t.ID)
	}

	cred, err := ToCredentialOwnFields(t)
	if err != nil {
		return nil, err
	}
	cred.UserID = t.User.ID
	return cred, nil
}

// ToCredentialOwnFields is the selective reverse mapping: scalar fields
// only, relations untouched. Update paths use it so a stale nested user or
// token list can never overwrite the stored association.
func ToCredentialOwnFields(t *Credential) (*domain.Credential, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: credential transfer is nil", ErrMapping)
	}
	return &domain.Credential{
		ID:                    t.ID,
		Username:              t.Username,
		Password:              t.Password,
		Role:                  domain.Role(t.Role),
		Enabled:               t.Enabled,
		AccountNonExpired:     t.AccountNonExpired,
		AccountNonLocked:      t.AccountNonLocked,
		CredentialsNonExpired: t.CredentialsNonExpired,
	}, nil
}

// ToToken rebuilds a verification token including the id of the nested
// credential reference. It fails when the nested credential is absent.
func ToToken(t *VerificationToken) (*domain.VerificationToken, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: verification token transfer is nil", ErrMapping)
	}
	if t.Credential == nil {
		return nil, fmt.Errorf("%w: verification token %d has no nested credential", ErrMapping, t.ID)
	}
	tok := ToTokenOwnFields(t)
	tok.CredentialID = t.Credential.ID
	return tok, nil
}

// ToTokenOwnFields is the selective reverse mapping for verification tokens:
// id, token text and expiry only, credential relation untouched.
func ToTokenOwnFields(t *VerificationToken) *domain.VerificationToken {
	return &domain.VerificationToken{
		ID:         t.ID,
		Token:      t.Token,
		ExpireDate: t.ExpireDate,
	}
}

// credentialScalars copies the credential's own fields into a transfer
// object without relations.
func credentialScalars(cred *domain.Credential) *Credential {
	return &Credential{
		ID:                    cred.ID,
		Username:              cred.Username,
		Password:              cred.Password,
		Role:                  string(cred.Role),
		Enabled:               cred.Enabled,
		AccountNonExpired:     cred.AccountNonExpired,
		AccountNonLocked:      cred.AccountNonLocked,
		CredentialsNonExpired: cred.CredentialsNonExpired,
	}
}
