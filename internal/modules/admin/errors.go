package admin

import "errors"

var (
	ErrNotFound     = errors.New("property not found")
	ErrInvalidState = errors.New("property is not awaiting review")
	ErrValidation   = errors.New("invalid review input")
)
