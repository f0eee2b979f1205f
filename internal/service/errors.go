package service

import "errors"

// Sentinel errors the HTTP layer maps to status codes. Services wrap them
// with %w and a human-readable reason.
var (
	ErrValidation         = errors.New("validation")          // 400
	ErrOutOfStock         = errors.New("out of stock")        // 400
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
	ErrForbidden          = errors.New("forbidden")           // 403
	ErrNotFound           = errors.New("not found")           // 404
	ErrConflict           = errors.New("conflict")            // 409
)
