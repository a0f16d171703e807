package auth

import (
	"context"

	"github.com/google/uuid"
)

// Storage defines the user persistence operations the service needs.
// Implementations must return ErrUserNotFound for missing records and
// ErrEmailAlreadyExists/ErrPhoneAlreadyExists on unique violations.
type Storage interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
}
