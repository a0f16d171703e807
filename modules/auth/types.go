package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is the stored account record. PasswordHash is a bcrypt hash and
// never leaves the service layer.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
