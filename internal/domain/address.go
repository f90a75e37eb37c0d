package domain

import "fmt"

// Address validation errors
var (
	ErrEmptyFullAddress = fmt.Errorf("%w: full address cannot be empty", ErrValidation)
	ErrEmptyCity        = fmt.Errorf("%w: city cannot be empty", ErrValidation)
	ErrMissingOwnerID   = fmt.Errorf("%w: address requires an owning user id", ErrValidation)
)

// Address is a postal address owned by exactly one user. The owner is
// referenced by id and is immutable after creation; update paths never
// touch it.
type Address struct {
	ID          int    `json:"id"`
	FullAddress string `json:"full_address"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`

	// UserID references the owning user. Immutable after creation.
	UserID int `json:"-"`
}

// Validate checks the Address's fields.
func (a *Address) Validate() error {
	if a.FullAddress == "" {
		return ErrEmptyFullAddress
	}
	if a.City == "" {
		return ErrEmptyCity
	}
	if a.UserID == 0 {
		return ErrMissingOwnerID
	}
	return nil
}

// Equal reports business-key equality, excluding the owner relation.
func (a *Address) Equal(other *Address) bool {
	if other == nil {
		return false
	}
	return a.ID == other.ID &&
		a.FullAddress == other.FullAddress &&
		a.PostalCode == other.PostalCode &&
		a.City == other.City
}
