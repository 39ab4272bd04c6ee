package service

import "errors"

// Business-level errors. Handlers map these onto HTTP status codes; anything
// not in this list is treated as a storage failure.
var (
	ErrValidation     = errors.New("invalid input")
	ErrConflict       = errors.New("already exists")
	ErrNotFound       = errors.New("not found")
	ErrAuthentication = errors.New("invalid credentials")
	ErrStorage        = errors.New("storage failure")
)
