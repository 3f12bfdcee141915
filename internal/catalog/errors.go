package catalog

import "errors"

// Validation errors surfaced to the user on add.
var (
	ErrEmptyName     = errors.New("treatment name is required")
	ErrDuplicateName = errors.New("treatment already exists")
	ErrInvalidPrice  = errors.New("price must be at least 1")
)
