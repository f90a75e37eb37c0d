package domain

import "fmt"

// Credential validation errors
var (
	ErrEmptyUsername = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrEmptyPassword = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrInvalidRole   = fmt.Errorf("%w: invalid role", ErrValidation)
	ErrMissingUserID = fmt.Errorf("%w: credential requires an owning user id", ErrValidation)
)

// Role is the authority granted to a credential.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// Valid reports whether the role is one of the known authorities.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Credential is the authentication record for exactly one user. The owning
// user is referenced by id, set at creation and never re-linked afterwards.
// Password always holds the bcrypt hash once the credential has passed
// through a service write path; plaintext never reaches a store.
type Credential struct {
	ID                    int    `json:"id"`
	Username              string `json:"username"`
	Password              string `json:"-"`
	Role                  Role   `json:"role"`
	Enabled               bool   `json:"enabled"`
	AccountNonExpired     bool   `json:"account_non_expired"`
	AccountNonLocked      bool   `json:"account_non_locked"`
	CredentialsNonExpired bool   `json:"credentials_non_expired"`

	// UserID is the required back-reference to the owning user.
	// Immutable after creation.
	UserID int `json:"-"`
}

// Validate checks the Credential's fields, including the required owning
// user reference.
func (c *Credential) Validate() error {
	if c.Username == "" {
		return ErrEmptyUsername
	}
	if c.Password == "" {
		return ErrEmptyPassword
	}
	if !c.Role.Valid() {
		return ErrInvalidRole
	}
	if c.UserID == 0 {
		return ErrMissingUserID
	}
	return nil
}

// Active reports whether every account-status flag permits authentication.
func (c *Credential) Active() bool {
	return c.Enabled && c.AccountNonExpired && c.AccountNonLocked && c.CredentialsNonExpired
}

// Equal reports business-key equality: id plus intrinsic fields, excluding
// the user relation.
func (c *Credential) Equal(other *Credential) bool {
	if other == nil {
		return false
	}
	return c.ID == other.ID &&
		c.Username == other.Username &&
		c.Password == other.Password &&
		c.Role == other.Role &&
		c.Enabled == other.Enabled &&
		c.AccountNonExpired == other.AccountNonExpired &&
		c.AccountNonLocked == other.AccountNonLocked &&
		c.CredentialsNonExpired == other.CredentialsNonExpired
}
