package session

import "errors"

var (
	ErrMissingSigningKey = errors.New("signing key is required")
	ErrSigningKeyTooWeak = errors.New("signing key must be at least 32 bytes")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenInvalid      = errors.New("invalid token")
)
