package adapter

import (
	"context"
	"time"

	"github.com/abhinavjoyc/quizzzy-The-AI-Quizz-Generator/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCacheAdapter implements the domain.Cache interface using a Redis client.
type RedisCacheAdapter struct {
	client *redis.Client
}

// NewRedisCacheAdapter creates a new instance of RedisCacheAdapter.
// It expects a connected *redis.Client.
func NewRedisCacheAdapter(client *redis.Client) domain.Cache {
	return &RedisCacheAdapter{client: client}
}

// Get retrieves an item from the Redis cache.
// It translates redis.Nil to domain.ErrCacheMiss.
func (r *RedisCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", domain.ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

// Set adds an item to the Redis cache.
func (r *RedisCacheAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Delete removes an item from the Redis cache.
func (r *RedisCacheAdapter) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Ping checks the health of the Redis server.
func (r *RedisCacheAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// IncrementScore implements Cache.IncrementScore on a Redis sorted set.
func (r *RedisCacheAdapter) IncrementScore(ctx context.Context, key, member string, delta float64) error {
	return r.client.ZIncrBy(ctx, key, delta, member).Err()
}

// TopMembers implements Cache.TopMembers on a Redis sorted set.
func (r *RedisCacheAdapter) TopMembers(ctx context.Context, key string, n int64) ([]domain.ScoredMember, error) {
	if n <= 0 {
		return nil, nil
	}
	entries, err := r.client.ZRevRangeWithScores(ctx, key, 0, n-1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrCacheMiss
		}
		return nil, err
	}
	members := make([]domain.ScoredMember, 0, len(entries))
	for _, e := range entries {
		member, ok := e.Member.(string)
		if !ok {
			continue
		}
		members = append(members, domain.ScoredMember{Member: member, Score: e.Score})
	}
	return members, nil
}
