package otp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/authgate/pkg/pg"
)

// PostgresStore persists challenges in the otp_challenges table.
// The unique index on (user_id, purpose) backs the one-live-challenge
// invariant even if two issuances race past the transactional delete.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a ChallengeStore backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) ReplaceChallenge(ctx context.Context, ch Challenge) error {
	// Delete-then-insert runs in one transaction so a concurrent verify
	// never observes zero or two live challenges for the pair.
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace challenge: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx,
		`DELETE FROM otp_challenges WHERE user_id = $1 AND purpose = $2`,
		ch.UserID, ch.Purpose,
	); err != nil {
		return fmt.Errorf("delete superseded challenge: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO otp_challenges (id, user_id, code, purpose, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ch.ID, ch.UserID, ch.Code, ch.Purpose, ch.ExpiresAt, ch.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert challenge: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) GetChallenge(ctx context.Context, userID uuid.UUID, purpose Purpose) (*Challenge, error) {
	var ch Challenge
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, code, purpose, expires_at, created_at
		 FROM otp_challenges WHERE user_id = $1 AND purpose = $2`,
		userID, purpose,
	).Scan(&ch.ID, &ch.UserID, &ch.Code, &ch.Purpose, &ch.ExpiresAt, &ch.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query challenge: %w", err)
	}
	return &ch, nil
}

func (s *PostgresStore) ConsumeChallenge(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM otp_challenges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("consume challenge: %w", err)
	}
	// Zero rows means a concurrent verify already consumed it or a fresh
	// issuance superseded it; either way the code no longer wins.
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM otp_challenges WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("sweep expired challenges: %w", err)
	}
	return tag.RowsAffected(), nil
}

var _ ChallengeStore = (*PostgresStore)(nil)
