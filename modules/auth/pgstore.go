package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/authgate/pkg/pg"
)

// PostgresStorage implements Storage on a pgx connection pool.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

var _ Storage = (*PostgresStorage)(nil)

const (
	emailUniqueConstraint = "users_email_key"
	phoneUniqueConstraint = "users_phone_number_key"
)

func (s *PostgresStorage) CreateUser(ctx context.Context, user *User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, first_name, last_name, email, phone_number, password_hash, verified, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.FirstName, user.LastName, user.Email, user.PhoneNumber, user.PasswordHash, user.Verified, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			switch pg.ConstraintName(err) {
			case phoneUniqueConstraint:
				return ErrPhoneAlreadyExists
			default:
				return ErrEmailAlreadyExists
			}
		}
		return fmt.Errorf("%w: %w", ErrFailedToCreateUser, err)
	}
	return nil
}

func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.getUser(ctx,
		`SELECT id, first_name, last_name, email, phone_number, password_hash, verified, created_at, updated_at
		 FROM users WHERE email = $1`, email)
}

func (s *PostgresStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.getUser(ctx,
		`SELECT id, first_name, last_name, email, phone_number, password_hash, verified, created_at, updated_at
		 FROM users WHERE id = $1`, id)
}

func (s *PostgresStorage) getUser(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.Verified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStorage) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET verified = $2, updated_at = $3 WHERE id = $1`,
		id, verified, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToUpdateUser, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PostgresStorage) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`,
		id, passwordHash, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToUpdateUser, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
