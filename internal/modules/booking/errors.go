package booking

import "errors"

var (
	ErrNotFound         = errors.New("booking request not found")
	ErrForbidden        = errors.New("booking request belongs to another user")
	ErrInvalidState     = errors.New("booking request state does not permit this operation")
	ErrDuplicateRequest = errors.New("an active request for this property already exists")
	ErrAlreadyDeclined  = errors.New("a previous request for this property was declined")
	ErrValidation       = errors.New("invalid booking input")
)
