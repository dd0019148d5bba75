// Package common defines shared constants and sentinel errors used across
// the console, the cache and the transport. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Transport errors.
	ErrUnavailable       = errors.New("service unavailable")
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrMalformedResponse = errors.New("malformed response")

	// Login reason codes reported by the upstream.
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Validation errors.
	ErrInvalidEmail    = errors.New("invalid email")
	ErrPasswordTooWeak = errors.New("password too short")
	ErrValidation      = errors.New("validation error")

	// Cache lifecycle errors.
	ErrLoadFailed = errors.New("user collection load failed")
	ErrClosed     = errors.New("cache closed")

	// Session errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("token expired")
)
