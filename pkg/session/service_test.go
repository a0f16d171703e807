package session_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/session"
)

const testSigningKey = "test-signing-key-32-bytes-long!!"

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		svc, err := session.New(session.Config{SigningKey: testSigningKey})
		require.NoError(t, err)
		assert.Equal(t, 5*time.Minute, svc.TokenTTL())
	})

	t.Run("missing signing key", func(t *testing.T) {
		t.Parallel()

		_, err := session.New(session.Config{})
		assert.ErrorIs(t, err, session.ErrMissingSigningKey)
	})

	t.Run("short signing key", func(t *testing.T) {
		t.Parallel()

		_, err := session.New(session.Config{SigningKey: "short"})
		assert.ErrorIs(t, err, session.ErrSigningKeyTooWeak)
	})

	t.Run("custom ttl", func(t *testing.T) {
		t.Parallel()

		svc, err := session.New(session.Config{SigningKey: testSigningKey, TokenTTL: time.Hour})
		require.NoError(t, err)
		assert.Equal(t, time.Hour, svc.TokenTTL())
	})
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc, err := session.New(session.Config{SigningKey: testSigningKey})
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	past := time.Now().Add(-time.Hour)
	issuer, err := session.New(
		session.Config{SigningKey: testSigningKey, TokenTTL: time.Minute},
		session.WithClock(func() time.Time { return past }),
	)
	require.NoError(t, err)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	verifier, err := session.New(session.Config{SigningKey: testSigningKey})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, session.ErrTokenExpired)
}

func TestVerifyTampered(t *testing.T) {
	t.Parallel()

	svc, err := session.New(session.Config{SigningKey: testSigningKey})
	require.NoError(t, err)

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, session.ErrTokenInvalid)
}

func TestVerifyWrongKey(t *testing.T) {
	t.Parallel()

	issuer, err := session.New(session.Config{SigningKey: testSigningKey})
	require.NoError(t, err)

	verifier, err := session.New(session.Config{SigningKey: "another-signing-key-32-bytes-ok!"})
	require.NoError(t, err)

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, session.ErrTokenInvalid)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	svc, err := session.New(session.Config{SigningKey: testSigningKey})
	require.NoError(t, err)

	for _, tok := range []string{"", "not.a.jwt", "a.b", "a.b.c.d"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, session.ErrTokenInvalid, "token %q", tok)
	}
}

func TestVerifyNonUUIDSubject(t *testing.T) {
	t.Parallel()

	// Token with a valid signature but a subject that is not a UUID must be
	// rejected as invalid, not crash the caller.
	svc, err := session.New(session.Config{SigningKey: testSigningKey})
	require.NoError(t, err)

	token, err := svc.Issue(uuid.Nil)
	require.NoError(t, err)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, got)
}
