package services

import "errors"

// Sentinel errors shared by every service. Handlers map these onto HTTP
// statuses in one place; anything else becomes a 500.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("resource belongs to another student")
	ErrValidation         = errors.New("validation failed")
	ErrAlreadyCompleted   = errors.New("already completed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSubjectNotOwned    = errors.New("subject does not belong to student")
)
