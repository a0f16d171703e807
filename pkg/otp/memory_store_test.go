package otp_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/otp"
)

func newChallenge(userID uuid.UUID, purpose otp.Purpose, expiresAt time.Time) otp.Challenge {
	return otp.Challenge{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      "123456",
		Purpose:   purpose,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
}

func TestMemoryStoreReplaceAndGet(t *testing.T) {
	t.Parallel()

	store := otp.NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	ch := newChallenge(userID, otp.PurposeAccountVerification, time.Now().Add(5*time.Minute))
	require.NoError(t, store.ReplaceChallenge(ctx, ch))

	got, err := store.GetChallenge(ctx, userID, otp.PurposeAccountVerification)
	require.NoError(t, err)
	assert.Equal(t, ch.ID, got.ID)

	_, err = store.GetChallenge(ctx, userID, otp.PurposePasswordReset)
	assert.ErrorIs(t, err, otp.ErrNotFound)
}

func TestMemoryStoreReplaceOverwrites(t *testing.T) {
	t.Parallel()

	store := otp.NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	old := newChallenge(userID, otp.PurposeAccountVerification, time.Now().Add(5*time.Minute))
	require.NoError(t, store.ReplaceChallenge(ctx, old))

	fresh := newChallenge(userID, otp.PurposeAccountVerification, time.Now().Add(5*time.Minute))
	require.NoError(t, store.ReplaceChallenge(ctx, fresh))

	assert.Equal(t, 1, store.Len())

	got, err := store.GetChallenge(ctx, userID, otp.PurposeAccountVerification)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, got.ID)

	// The superseded challenge id is gone.
	assert.ErrorIs(t, store.ConsumeChallenge(ctx, old.ID), otp.ErrNotFound)
}

func TestMemoryStoreConsume(t *testing.T) {
	t.Parallel()

	store := otp.NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	ch := newChallenge(userID, otp.PurposeAccountVerification, time.Now().Add(5*time.Minute))
	require.NoError(t, store.ReplaceChallenge(ctx, ch))

	require.NoError(t, store.ConsumeChallenge(ctx, ch.ID))
	assert.Equal(t, 0, store.Len())

	assert.ErrorIs(t, store.ConsumeChallenge(ctx, ch.ID), otp.ErrNotFound)
}

func TestMemoryStoreDeleteExpired(t *testing.T) {
	t.Parallel()

	store := otp.NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.ReplaceChallenge(ctx, newChallenge(uuid.New(), otp.PurposeAccountVerification, now.Add(-time.Minute))))
	require.NoError(t, store.ReplaceChallenge(ctx, newChallenge(uuid.New(), otp.PurposeAccountVerification, now.Add(time.Minute))))

	n, err := store.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, store.Len())
}
