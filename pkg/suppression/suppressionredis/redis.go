// Package suppressionredis implements the suppression list on a Redis set.
package suppressionredis

import (
	"context"
	"strings"

	"github.com/postwave/postwave/pkg/suppression"
	"github.com/redis/go-redis/v9"
)

const setKey = "suppression:emails"

// RedisStore implements suppression.Store backed by a Redis set.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a new Redis-backed suppression store.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Add marks an address as opted out.
func (s *RedisStore) Add(ctx context.Context, email string) error {
	if err := s.rdb.SAdd(ctx, setKey, normalize(email)).Err(); err != nil {
		return suppression.NewStoreError(err)
	}
	return nil
}

// Remove clears an address's opt-out.
func (s *RedisStore) Remove(ctx context.Context, email string) error {
	if err := s.rdb.SRem(ctx, setKey, normalize(email)).Err(); err != nil {
		return suppression.NewStoreError(err)
	}
	return nil
}

// IsSuppressed reports whether an address has opted out.
func (s *RedisStore) IsSuppressed(ctx context.Context, email string) (bool, error) {
	suppressed, err := s.rdb.SIsMember(ctx, setKey, normalize(email)).Result()
	if err != nil {
		return false, suppression.NewStoreError(err)
	}
	return suppressed, nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
