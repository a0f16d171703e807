package auth

import "errors"

var (
	// ErrEmailAlreadyExists is returned when registration hits an
	// existing email address.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrPhoneAlreadyExists is returned when registration hits an
	// existing phone number.
	ErrPhoneAlreadyExists = errors.New("phone number already registered")

	// ErrUserNotFound is returned when no account matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned on login for both unknown email
	// and password mismatch so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrFailedToCreateUser wraps storage failures during registration.
	ErrFailedToCreateUser = errors.New("failed to create user")

	// ErrFailedToUpdateUser wraps storage failures on user updates.
	ErrFailedToUpdateUser = errors.New("failed to update user")
)
