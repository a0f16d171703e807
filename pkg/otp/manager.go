package otp

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authgate/pkg/logger"
)

// Notifier delivers a freshly issued code to its owner out-of-band.
// Delivery is best-effort: the manager logs failures and never surfaces them.
type Notifier interface {
	SendCode(ctx context.Context, sendTo string, ch Challenge) error
}

// Config holds challenge lifecycle settings loaded from the environment.
type Config struct {
	TTL           time.Duration `env:"OTP_TTL" envDefault:"5m"`             // TTL is the lifetime of an issued code.
	NotifyTimeout time.Duration `env:"OTP_NOTIFY_TIMEOUT" envDefault:"10s"` // NotifyTimeout bounds the out-of-band delivery call.
	SweepInterval time.Duration `env:"OTP_SWEEP_INTERVAL" envDefault:"10m"` // SweepInterval is how often expired challenges are reclaimed.
}

// Manager owns the challenge state machine: issue, verify, sweep.
type Manager struct {
	store         ChallengeStore
	notifier      Notifier
	log           *slog.Logger
	ttl           time.Duration
	notifyTimeout time.Duration

	// now is swappable for deterministic expiry tests.
	now func() time.Time
}

// Option configures a Manager during construction.
type Option func(*Manager)

// WithLogger sets a custom logger for the manager.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithTTL sets the challenge lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithNotifyTimeout bounds the out-of-band delivery call.
func WithNotifyTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.notifyTimeout = d
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a challenge manager. The notifier may be nil, in which
// case issued codes are persisted but not delivered (useful in tests).
func NewManager(store ChallengeStore, notifier Notifier, opts ...Option) *Manager {
	m := &Manager{
		store:         store,
		notifier:      notifier,
		log:           logger.NewDiscard(),
		ttl:           5 * time.Minute,
		notifyTimeout: 10 * time.Second,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// TTL reports the configured challenge lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue atomically supersedes any live challenge for (userID, purpose) with
// a fresh random code and triggers delivery to sendTo. The challenge is
// valid once persisted regardless of delivery outcome.
func (m *Manager) Issue(ctx context.Context, userID uuid.UUID, sendTo string, purpose Purpose) (*Challenge, error) {
	if !purpose.Valid() {
		return nil, ErrInvalidPurpose
	}

	code, err := GenerateCode()
	if err != nil {
		return nil, err
	}

	now := m.now()
	ch := Challenge{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}

	if err := m.store.ReplaceChallenge(ctx, ch); err != nil {
		return nil, fmt.Errorf("persist otp challenge: %w", err)
	}

	m.deliver(ch, sendTo)

	return &ch, nil
}

// deliver runs the notifier in a goroutine detached from the request:
// the caller's response must not wait on, or fail with, the email provider.
func (m *Manager) deliver(ch Challenge, sendTo string) {
	if m.notifier == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				m.log.Error("otp delivery panicked",
					logger.UserID(ch.UserID.String()),
					slog.Any("panic", r),
					logger.Component("otp"),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), m.notifyTimeout)
		defer cancel()

		if err := m.notifier.SendCode(ctx, sendTo, ch); err != nil {
			m.log.Error("otp delivery failed",
				logger.UserID(ch.UserID.String()),
				logger.Purpose(ch.Purpose),
				logger.Error(err),
				logger.Component("otp"),
			)
		}
	}()
}

// Verify checks the supplied code against the live challenge for
// (userID, purpose) and consumes it on success.
//
//   - ErrNotFound: no challenge exists for the pair.
//   - ErrInvalidCode: a challenge exists but the code does not match; the
//     challenge stays in place, the caller must resend for a fresh one.
//   - ErrExpired: the code matches but the challenge is past expiry. It is
//     left for the sweeper rather than consumed here, so the result is
//     stable if the caller retries.
//   - nil: code matched in time and the challenge is consumed; a replay of
//     the same code reports ErrNotFound.
func (m *Manager) Verify(ctx context.Context, userID uuid.UUID, code string, purpose Purpose) error {
	if !purpose.Valid() {
		return ErrInvalidPurpose
	}

	ch, err := m.store.GetChallenge(ctx, userID, purpose)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(ch.Code), []byte(code)) != 1 {
		return ErrInvalidCode
	}

	if ch.Expired(m.now()) {
		return ErrExpired
	}

	if err := m.store.ConsumeChallenge(ctx, ch.ID); err != nil {
		return err
	}

	return nil
}

// SweepExpired removes challenges past their expiry. Expired challenges are
// never proactively rejected at read time beyond the Verify check, so this
// is the only path that reclaims abandoned rows.
func (m *Manager) SweepExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx, m.now())
}

// StartSweeper runs SweepExpired on the given interval until the context is
// cancelled. It is the only background goroutine the package owns.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				n, err := m.SweepExpired(ctx)
				if err != nil {
					m.log.Error("otp sweep failed", logger.Error(err), logger.Component("otp"))
					continue
				}
				if n > 0 {
					m.log.Info("expired otp challenges swept",
						slog.Int64("count", n),
						logger.Duration(time.Since(start)),
						logger.Component("otp"),
					)
				}
			}
		}
	}()
}
