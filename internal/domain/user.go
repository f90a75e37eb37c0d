package domain

import "fmt"

// Common validation errors
var (
	ErrEmptyFirstName = fmt.Errorf("%w: first name cannot be empty", ErrValidation)
	ErrEmptyLastName  = fmt.Errorf("%w: last name cannot be empty", ErrValidation)
	ErrEmptyEmail     = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail   = fmt.Errorf("%w: invalid email format", ErrValidation)
)

// User is the identity record. It owns zero-or-one Credential and
// zero-or-many Addresses. The credential relation is kept as an id
// back-pointer rather than an object reference; callers that need the
// credential fetch it through the store.
//
// A user without a credential is considered incomplete: the
// credential-aware service reads exclude it.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	// CredentialID is the back-pointer to the user's credential, nil while
	// the user is incomplete. It must always agree with the credential
	// row's user_id.
	CredentialID *int `json:"-"`
}

// NewUser creates a User from its intrinsic fields and validates it.
// The id is zero until the store assigns one.
func NewUser(firstName, lastName, imageURL, email, phone string) (*User, error) {
	user := &User{
		FirstName: firstName,
		LastName:  lastName,
		ImageURL:  imageURL,
		Email:     email,
		Phone:     phone,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the User's intrinsic fields.
func (u *User) Validate() error {
	if u.FirstName == "" {
		return ErrEmptyFirstName
	}
	if u.LastName == "" {
		return ErrEmptyLastName
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// Equal reports business-key equality: id plus intrinsic fields. Relation
// references are deliberately excluded so that structurally equal users
// loaded through different object graphs compare equal.
func (u *User) Equal(other *User) bool {
	if other == nil {
		return false
	}
	return u.ID == other.ID &&
		u.FirstName == other.FirstName &&
		u.LastName == other.LastName &&
		u.ImageURL == other.ImageURL &&
		u.Email == other.Email &&
		u.Phone == other.Phone
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
func validateEmailFormat(email string) bool {
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			atIndex = i
			break
		}
	}

	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	// Domain part needs a dot that is neither first nor last.
	domainPart := email[atIndex+1:]
	dotIndex := -1
	for i, char := range domainPart {
		if char == '.' {
			dotIndex = i
			break
		}
	}

	return dotIndex > 0 && dotIndex < len(domainPart)-1
}
