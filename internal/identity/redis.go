// internal/identity/redis.go
package identity

import (
	"context"

	stderrors "realty-assistant/internal/common/errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the user id in Redis under a fixed key. SetNX makes
// concurrent first calls converge on a single id.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetOrCreate(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == nil {
		return val, nil
	}
	if err != redis.Nil {
		return "", stderrors.Wrap(stderrors.ErrCodeIdentityStoreFailed, "read user id", err)
	}

	id := NewUserID()
	created, err := s.client.SetNX(ctx, key, id, 0).Result()
	if err != nil {
		return "", stderrors.Wrap(stderrors.ErrCodeIdentityStoreFailed, "persist user id", err)
	}
	if !created {
		// Another caller won the race; use its id.
		val, err = s.client.Get(ctx, key).Result()
		if err != nil {
			return "", stderrors.Wrap(stderrors.ErrCodeIdentityStoreFailed, "read user id", err)
		}
		return val, nil
	}
	return id, nil
}
