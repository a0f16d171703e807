package otp

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ChallengeStore is the durable home of pending challenges. Implementations
// must make ReplaceChallenge and ConsumeChallenge atomic: two concurrent
// issuances may never leave two live challenges for one (user, purpose)
// pair, and two concurrent verifications may never both consume one code.
type ChallengeStore interface {
	// ReplaceChallenge deletes any existing challenge for the challenge's
	// (user, purpose) pair and inserts the new one as a single atomic unit.
	ReplaceChallenge(ctx context.Context, ch Challenge) error

	// GetChallenge returns the live challenge for the pair, or ErrNotFound.
	GetChallenge(ctx context.Context, userID uuid.UUID, purpose Purpose) (*Challenge, error)

	// ConsumeChallenge deletes the challenge by id, returning ErrNotFound
	// when it was already consumed or superseded. The check-and-delete is
	// what makes a replayed code lose the race.
	ConsumeChallenge(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes challenges whose expiry is before the given
	// time and reports how many were swept.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
