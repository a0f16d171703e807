package otp_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/otp"
)

// chanNotifier records deliveries on a channel so tests can wait for the
// async send without sleeping.
type chanNotifier struct {
	mu   sync.Mutex
	sent chan otp.Challenge
	err  error
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{sent: make(chan otp.Challenge, 8)}
}

func (n *chanNotifier) SendCode(ctx context.Context, sendTo string, ch otp.Challenge) error {
	n.mu.Lock()
	err := n.err
	n.mu.Unlock()
	n.sent <- ch
	return err
}

func (n *chanNotifier) failWith(err error) {
	n.mu.Lock()
	n.err = err
	n.mu.Unlock()
}

func waitForDelivery(t *testing.T, n *chanNotifier) otp.Challenge {
	t.Helper()
	select {
	case ch := <-n.sent:
		return ch
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
		return otp.Challenge{}
	}
}

func TestIssueGeneratesSixDigitCode(t *testing.T) {
	t.Parallel()

	store := otp.NewMemoryStore()
	mgr := otp.NewManager(store, nil)

	ch, err := mgr.Issue(context.Background(), uuid.New(), "user@example.com", otp.PurposeAccountVerification)
	require.NoError(t, err)

	assert.Len(t, ch.Code, 6)
	assert.GreaterOrEqual(t, ch.Code, "100000")
	assert.LessOrEqual(t, ch.Code, "999999")
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), ch.ExpiresAt, time.Second)
}

func TestIssueRejectsUnknownPurpose(t *testing.T) {
	t.Parallel()

	mgr := otp.NewManager(otp.NewMemoryStore(), nil)

	_, err := mgr.Issue(context.Background(), uuid.New(), "user@example.com", otp.Purpose("totp"))
	assert.ErrorIs(t, err, otp.ErrInvalidPurpose)
}

func TestIssueSupersedesPriorChallenge(t *testing.T) {
	t.Parallel()

	store := otp.NewMemoryStore()
	mgr := otp.NewManager(store, nil)
	ctx := context.Background()
	userID := uuid.New()

	first, err := mgr.Issue(ctx, userID, "user@example.com", otp.PurposeAccountVerification)
	require.NoError(t, err)

	second, err := mgr.Issue(ctx, userID, "user@example.com", otp.PurposeAccountVerification)
	require.NoError(t, err)

	// Exactly one live challenge remains and only the fresh code verifies.
	assert.Equal(t, 1, store.Len())

	if first.Code != second.Code {
		err = mgr.Verify(ctx, userID, first.Code, otp.PurposeAccountVerification)
		assert.ErrorIs(t, err, otp.ErrInvalidCode)
	}

	err = mgr.Verify(ctx, userID, second.Code, otp.PurposeAccountVerification)
	assert.NoError(t, err)
}

func TestPurposesAreIndependent(t *testing.T) {
	t.Parallel()

	store := otp.NewMemoryStore()
	mgr := otp.NewManager(store, nil)
	ctx := context.Background()
	userID := uuid.New()

	verify, err := mgr.Issue(ctx, userID, "user@example.com", otp.PurposeAccountVerification)
	require.NoError(t, err)
	reset, err := mgr.Issue(ctx, userID, "user@example.com", otp.PurposePasswordReset)
	require.NoError(t, err)

	assert.Equal(t, 2, store.Len())

	// Consuming one leaves the other live.
	require.NoError(t, mgr.Verify(ctx, userID, verify.Code, otp.PurposeAccountVerification))
	assert.Equal(t, 1, store.Len())

	require.NoError(t, mgr.Verify(ctx, userID, reset.Code, otp.PurposePasswordReset))
	assert.Equal(t, 0, store.Len())
}

func TestVerifyNoChallenge(t *testing.T) {
	t.Parallel()

	mgr := otp.NewManager(otp.NewMemoryStore(), nil)

	err := mgr.Verify(context.Background(), uuid.New(), "123456", otp.PurposeAccountVerification)
	assert.ErrorIs(t, err, otp.ErrNotFound)
}

func TestVerifyWrongCodeKeepsChallenge(t *testing.T) {
	t.Parallel()

	store := otp.NewMemoryStore()
	mgr := otp.NewManager(store, nil)
	ctx := context.Background()
	userID := uuid.New()

	ch, err := mgr.Issue(ctx, userID, "user@example.com", otp.PurposeAccountVerification)
	require.NoError(t, err)

	wrong := "000000"
	if ch.Code == wrong {
		wrong = "000001"
	}

	err = mgr.Verify(ctx, userID, wrong, otp.PurposeAccountVerification)
	assert.ErrorIs(t, err, otp.ErrInvalidCode)
	assert.Equal(t, 1, store.Len())

	// The right code still works after a failed attempt.
	assert.NoError(t, mgr.Verify(ctx, userID, ch.Code, otp.PurposeAccountVerification))
}

func TestVerifyExpiredMatchingCode(t *testing.T) {
	t.Parallel()

	store := otp.NewMemoryStore()

	past := time.Now().Add(-time.Hour)
	issuer := otp.NewManager(store, nil, otp.WithClock(func() time.Time { return past }))
	verifier := otp.NewManager(store, nil)

	ctx := context.Background()
	userID := uuid.New()

	ch, err := issuer.Issue(ctx, userID, "user@example.com", otp.PurposeAccountVerification)
	require.NoError(t, err)

	// Matching code past expiry reports expired, never success, and the
	// challenge stays until swept.
	err = verifier.Verify(ctx, userID, ch.Code, otp.PurposeAccountVerification)
	assert.ErrorIs(t, err, otp.ErrExpired)
	assert.Equal(t, 1, store.Len())

	err = verifier.Verify(ctx, userID, ch.Code, otp.PurposeAccountVerification)
	assert.ErrorIs(t, err, otp.ErrExpired)
}

func TestVerifyReplayRejected(t *testing.T) {
	t.Parallel()

	store := otp.NewMemoryStore()
	mgr := otp.NewManager(store, nil)
	ctx := context.Background()
	userID := uuid.New()

	ch, err := mgr.Issue(ctx, userID, "user@example.com", otp.PurposeAccountVerification)
	require.NoError(t, err)

	require.NoError(t, mgr.Verify(ctx, userID, ch.Code, otp.PurposeAccountVerification))

	err = mgr.Verify(ctx, userID, ch.Code, otp.PurposeAccountVerification)
	assert.ErrorIs(t, err, otp.ErrNotFound)
}

func TestIssueDeliversCode(t *testing.T) {
	t.Parallel()

	notifier := newChanNotifier()
	mgr := otp.NewManager(otp.NewMemoryStore(), notifier)

	ch, err := mgr.Issue(context.Background(), uuid.New(), "user@example.com", otp.PurposeAccountVerification)
	require.NoError(t, err)

	delivered := waitForDelivery(t, notifier)
	assert.Equal(t, ch.Code, delivered.Code)
	assert.Equal(t, ch.ID, delivered.ID)
}

func TestDeliveryFailureDoesNotInvalidateChallenge(t *testing.T) {
	t.Parallel()

	notifier := newChanNotifier()
	notifier.failWith(errors.New("smtp down"))

	store := otp.NewMemoryStore()
	mgr := otp.NewManager(store, notifier)
	ctx := context.Background()
	userID := uuid.New()

	ch, err := mgr.Issue(ctx, userID, "user@example.com", otp.PurposeAccountVerification)
	require.NoError(t, err)

	waitForDelivery(t, notifier)

	// The challenge is valid once persisted regardless of delivery outcome.
	assert.NoError(t, mgr.Verify(ctx, userID, ch.Code, otp.PurposeAccountVerification))
}

func TestSweepExpired(t *testing.T) {
	t.Parallel()

	store := otp.NewMemoryStore()

	past := time.Now().Add(-time.Hour)
	stale := otp.NewManager(store, nil, otp.WithClock(func() time.Time { return past }))
	fresh := otp.NewManager(store, nil)

	ctx := context.Background()

	_, err := stale.Issue(ctx, uuid.New(), "old@example.com", otp.PurposeAccountVerification)
	require.NoError(t, err)
	live, err := fresh.Issue(ctx, uuid.New(), "new@example.com", otp.PurposeAccountVerification)
	require.NoError(t, err)

	n, err := fresh.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, store.Len())

	// The live challenge survives the sweep.
	assert.NoError(t, fresh.Verify(ctx, live.UserID, live.Code, otp.PurposeAccountVerification))
}

func TestCustomTTL(t *testing.T) {
	t.Parallel()

	mgr := otp.NewManager(otp.NewMemoryStore(), nil, otp.WithTTL(time.Minute))
	assert.Equal(t, time.Minute, mgr.TTL())

	ch, err := mgr.Issue(context.Background(), uuid.New(), "user@example.com", otp.PurposePasswordReset)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), ch.ExpiresAt, time.Second)
}
