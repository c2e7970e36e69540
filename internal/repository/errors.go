package repository

import "errors"

// Domain errors returned by repositories and services. Handlers map them
// to HTTP status codes.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateVote = errors.New("duplicate vote")
	ErrForbidden     = errors.New("forbidden")
	ErrValidation    = errors.New("validation failed")
)
