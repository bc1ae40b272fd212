package domain

import "errors"

// Error taxonomy. Every service error wraps exactly one of these so handlers
// and the global error handler can classify with errors.Is.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateResource  = errors.New("duplicate resource")
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrValidation         = errors.New("validation failed")
	ErrInternal           = errors.New("internal error")
)

// Token errors
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenRevoked = errors.New("token revoked")
)
