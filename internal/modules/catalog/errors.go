package catalog

import "errors"

var (
	ErrNotFound            = errors.New("property not found")
	ErrForbidden           = errors.New("property belongs to another owner")
	ErrInsufficientCredits = errors.New("not enough credits for this operation")
	ErrContactLocked       = errors.New("owner contact is locked for this user")
	ErrValidation          = errors.New("invalid property input")
)
