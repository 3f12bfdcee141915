package session

import "errors"

var (
	ErrMissingPatientInfo = errors.New("patient name and phone number are required")
	ErrUnusualPhone       = errors.New("phone number looks unusual")
	ErrNoTreatments       = errors.New("select at least one treatment")
	ErrDiscountRange      = errors.New("VIP discount must be between 0 and 100")
	ErrNotSelected        = errors.New("treatment is not selected")
	ErrNotGenerated       = errors.New("generate the bill and prescription first")
)
