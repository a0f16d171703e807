package otp

import "errors"

var (
	// ErrNotFound is returned when no challenge exists for a (user, purpose) pair.
	ErrNotFound = errors.New("otp challenge not found")
	// ErrInvalidCode is returned when a challenge exists but the supplied code does not match.
	ErrInvalidCode = errors.New("invalid otp code")
	// ErrExpired is returned when the code matches but the challenge is past its expiry.
	ErrExpired = errors.New("otp code expired")
	// ErrInvalidPurpose is returned for purposes outside the known set.
	ErrInvalidPurpose = errors.New("invalid otp purpose")
)
