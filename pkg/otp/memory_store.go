package otp

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type pairKey struct {
	userID  uuid.UUID
	purpose Purpose
}

// MemoryStore is an in-process ChallengeStore for tests and local tooling.
// A single mutex gives it the same atomicity guarantees the SQL store gets
// from transactions.
type MemoryStore struct {
	mu         sync.Mutex
	challenges map[pairKey]Challenge
}

// NewMemoryStore creates an empty in-memory challenge store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		challenges: make(map[pairKey]Challenge),
	}
}

func (s *MemoryStore) ReplaceChallenge(ctx context.Context, ch Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.challenges[pairKey{ch.UserID, ch.Purpose}] = ch
	return nil
}

func (s *MemoryStore) GetChallenge(ctx context.Context, userID uuid.UUID, purpose Purpose) (*Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[pairKey{userID, purpose}]
	if !ok {
		return nil, ErrNotFound
	}
	return &ch, nil
}

func (s *MemoryStore) ConsumeChallenge(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, ch := range s.challenges {
		if ch.ID == id {
			delete(s.challenges, key)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for key, ch := range s.challenges {
		if ch.ExpiresAt.Before(before) {
			delete(s.challenges, key)
			n++
		}
	}
	return n, nil
}

// Len reports the number of live challenges, used by tests.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.challenges)
}

var _ ChallengeStore = (*MemoryStore)(nil)
