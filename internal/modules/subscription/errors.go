package subscription

import "errors"

var (
	ErrNotFound    = errors.New("payment or package not found")
	ErrInvalidPlan = errors.New("unknown package plan")
	ErrValidation  = errors.New("invalid subscription input")
	ErrGateway     = errors.New("payment gateway did not return a redirect URL")
)
