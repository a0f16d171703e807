package otp

import (
	"time"

	"github.com/google/uuid"
)

// Purpose tags which flow a challenge authorizes. A password-reset code can
// never validate an account-verification request and vice versa.
type Purpose string

const (
	PurposeAccountVerification Purpose = "account_verification"
	PurposePasswordReset       Purpose = "password_reset"
)

// Valid reports whether the purpose is one of the known values.
func (p Purpose) Valid() bool {
	switch p {
	case PurposeAccountVerification, PurposePasswordReset:
		return true
	}
	return false
}

func (p Purpose) String() string {
	return string(p)
}

// Challenge is a pending proof-of-channel-ownership request.
// It references its user but does not own it.
type Challenge struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Code      string
	Purpose   Purpose
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the challenge is past its expiry at the given time.
func (c Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
