package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const minSigningKeyLen = 32

// Service issues and verifies HMAC-SHA256 signed session tokens.
// The signing key lives in memory only.
type Service struct {
	signingKey []byte
	tokenTTL   time.Duration
	issuer     string

	// now is swappable for deterministic expiry tests.
	now func() time.Time
}

// Option configures a Service during construction.
type Option func(*Service)

// WithClock replaces the time source, used by tests to mint already-expired tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a session token service from config.
func New(cfg Config, opts ...Option) (*Service, error) {
	if cfg.SigningKey == "" {
		return nil, ErrMissingSigningKey
	}
	if len(cfg.SigningKey) < minSigningKeyLen {
		return nil, ErrSigningKeyTooWeak
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	s := &Service{
		signingKey: []byte(cfg.SigningKey),
		tokenTTL:   ttl,
		issuer:     cfg.Issuer,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// TokenTTL reports the configured token lifetime.
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Issue mints a signed token asserting the given user identity.
func (s *Service) Issue(userID uuid.UUID) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify checks the signature and expiry of a token and returns the user id
// it asserts. Malformed, unsigned, or tampered tokens yield ErrTokenInvalid;
// expiry is reported separately as ErrTokenExpired.
func (s *Service) Verify(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenInvalid
	}

	if !token.Valid {
		return uuid.Nil, ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}

	return userID, nil
}
