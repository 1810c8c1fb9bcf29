package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pptuition/tuition-backend/internal/config"
	"github.com/pptuition/tuition-backend/internal/model"
)

// RedisStore persists the live session record under a single Redis key so
// every server process (and a future multi-node deployment) reads the same
// session. Records are stored as JSON and must round-trip exactly.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Put replaces the live session record. No TTL is set: lifecycle is owned by
// the manager, which deletes on stop or expiry.
func (s *RedisStore) Put(ctx context.Context, session *model.LiveSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal live session: %w", err)
	}
	if err := s.rdb.Set(ctx, config.StoreKey.LiveSession(), raw, 0).Err(); err != nil {
		return fmt.Errorf("set live session: %w", err)
	}
	return nil
}

// Get reads the current live session record, or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context) (*model.LiveSession, error) {
	raw, err := s.rdb.Get(ctx, config.StoreKey.LiveSession()).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get live session: %w", err)
	}

	var session model.LiveSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal live session: %w", err)
	}
	return &session, nil
}

// Delete removes the live session record. Deleting an absent record is a
// no-op so the manager's stop stays idempotent.
func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.rdb.Del(ctx, config.StoreKey.LiveSession()).Err(); err != nil {
		return fmt.Errorf("delete live session: %w", err)
	}
	return nil
}
