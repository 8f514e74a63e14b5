package jwtmw

import "errors"

// Token validation failures. The Auth Gate maps each to its client message.
var (
	// ErrTokenMissing is returned when the request carries no token.
	ErrTokenMissing = errors.New("authorization token not found")

	// ErrTokenInvalid is returned for malformed, forged or revoked tokens.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrTokenExpired is returned when a well-formed token is past its expiry.
	ErrTokenExpired = errors.New("token is expired")
)
