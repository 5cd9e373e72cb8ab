package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	redisconn "github.com/gflauder/PeerReviewCore/pkg/redis"
)

const redisKeyPrefix = "session:"

// RedisStore implements Store on a redis backend. Records are JSON
// blobs with the lifetime enforced natively through key TTLs, so
// DeleteExpired is a no-op.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisStoreFromConfig connects to redis with the connector's retry
// logic and wraps the resulting client.
func NewRedisStoreFromConfig(ctx context.Context, cfg redisconn.Config) (*RedisStore, error) {
	client, err := redisconn.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewRedisStore(client), nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Record, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Join(ErrInvalidRecord, err)
	}
	return &rec, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, rec *Record, ttl time.Duration) error {
	if id == "" || rec == nil {
		return ErrInvalidRecord
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Join(ErrInvalidRecord, err)
	}

	return s.client.Set(ctx, redisKeyPrefix+id, data, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKeyPrefix+id).Err()
}

// DeleteExpired is a no-op; redis expires keys natively.
func (s *RedisStore) DeleteExpired(ctx context.Context) error {
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
