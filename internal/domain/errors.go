package domain

import "errors"

// ErrValidation is the category sentinel for every field-validation failure.
// The per-field errors declared beside each entity wrap it, so callers can
// classify a failure as a validation problem without enumerating the fields,
// the same way the store's not-found errors wrap their category sentinel.
var ErrValidation = errors.New("validation failed")
