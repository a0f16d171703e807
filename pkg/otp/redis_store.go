package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// retentionGrace keeps expired challenges readable for a while so Verify can
// still report ErrExpired instead of ErrNotFound right after expiry. Redis
// key TTL then reclaims them without a sweeper pass.
const retentionGrace = time.Hour

// RedisStore keeps challenges in Redis, an alternative to the SQL store for
// deployments that treat pending challenges as ephemeral state. Atomicity
// comes from single-key SET for replace and a Lua check-and-delete for
// consume.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a ChallengeStore backed by the given Redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func pairRedisKey(userID uuid.UUID, purpose Purpose) string {
	return fmt.Sprintf("otp:challenge:%s:%s", userID, purpose)
}

func idRedisKey(id uuid.UUID) string {
	return fmt.Sprintf("otp:id:%s", id)
}

type redisChallenge struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Code      string    `json:"code"`
	Purpose   Purpose   `json:"purpose"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *RedisStore) ReplaceChallenge(ctx context.Context, ch Challenge) error {
	data, err := json.Marshal(redisChallenge(ch))
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}

	ttl := time.Until(ch.ExpiresAt) + retentionGrace

	pairKey := pairRedisKey(ch.UserID, ch.Purpose)

	// SET on the pair key atomically supersedes any prior challenge; the id
	// key only resolves consume-by-id back to the pair key.
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, pairKey, data, ttl)
	pipe.Set(ctx, idRedisKey(ch.ID), pairKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store challenge: %w", err)
	}

	return nil
}

func (s *RedisStore) GetChallenge(ctx context.Context, userID uuid.UUID, purpose Purpose) (*Challenge, error) {
	data, err := s.client.Get(ctx, pairRedisKey(userID, purpose)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get challenge: %w", err)
	}

	var rc redisChallenge
	if err := json.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("unmarshal challenge: %w", err)
	}

	ch := Challenge(rc)
	return &ch, nil
}

// consumeScript is a compare-and-delete on the pair key: the challenge is
// removed only if the stored id still matches, so a concurrent verify or a
// superseding issuance wins exactly once. It touches only its declared key,
// which keeps EVAL valid under Redis Cluster.
var consumeScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then return 0 end
local ch = cjson.decode(v)
if ch.id ~= ARGV[1] then return 0 end
redis.call('DEL', KEYS[1])
return 1
`)

func (s *RedisStore) ConsumeChallenge(ctx context.Context, id uuid.UUID) error {
	// Resolve the pair key client-side; the id key is only an index and is
	// stale either way after this call, so it is dropped unconditionally.
	pairKey, err := s.client.Get(ctx, idRedisKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("resolve challenge id: %w", err)
	}

	n, err := consumeScript.Run(ctx, s.client, []string{pairKey}, id.String()).Int()
	if err != nil {
		return fmt.Errorf("consume challenge: %w", err)
	}

	if delErr := s.client.Del(ctx, idRedisKey(id)).Err(); delErr != nil && !errors.Is(delErr, redis.Nil) {
		return fmt.Errorf("drop challenge id index: %w", delErr)
	}

	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	// Key TTL already reclaims abandoned challenges; the scan only tightens
	// the window between logical expiry and TTL-based removal.
	var deleted int64

	iter := s.client.Scan(ctx, 0, "otp:challenge:*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		data, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}

		var rc redisChallenge
		if err := json.Unmarshal(data, &rc); err != nil {
			continue
		}

		if rc.ExpiresAt.Before(before) {
			if err := s.client.Del(ctx, key, idRedisKey(rc.ID)).Err(); err == nil {
				deleted++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("scan challenges: %w", err)
	}

	return deleted, nil
}

var _ ChallengeStore = (*RedisStore)(nil)
