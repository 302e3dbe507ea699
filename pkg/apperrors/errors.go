// Package apperrors holds the error values shared by the repository,
// service and handler layers. Handlers never show these to users
// directly; they pick the matching plain-text or JSON surface.
package apperrors

import "errors"

var (
	// ErrNotFound reports a lookup that matched no row.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken maps the users.email unique constraint.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so the login surface leaks neither.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
