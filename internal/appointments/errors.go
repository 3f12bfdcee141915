package appointments

import "errors"

// Validation errors surfaced to the user on book and edit.
var (
	ErrMissingFields = errors.New("name, phone and date are all required")
	ErrDateFormat    = errors.New("invalid date format, use YYYY-MM-DD")
	ErrPastDate      = errors.New("appointment date cannot be in the past")
)
