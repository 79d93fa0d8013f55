package services

import "errors"

// Sentinel errors shared across the service layer. Controllers map these
// onto HTTP status codes; repositories translate driver errors into them.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
)
