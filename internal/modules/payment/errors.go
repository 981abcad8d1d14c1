package payment

import "errors"

var (
	ErrNotFound     = errors.New("payment or booking not found")
	ErrForbidden    = errors.New("payment belongs to another user")
	ErrInvalidState = errors.New("booking state does not permit payment")
	ErrValidation   = errors.New("invalid payment input")
	ErrGateway      = errors.New("payment gateway did not return a redirect URL")
)
