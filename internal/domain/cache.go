package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// ScoredMember is one member of a ranked set, e.g. a topic and its play count.
type ScoredMember struct {
	Member string
	Score  float64
}

// Cache defines the interface (port) for caching operations.
// Implementations of this interface are the adapters (e.g. RedisCacheAdapter).
type Cache interface {
	// Get retrieves an item from the cache.
	// It returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)

	// Set adds an item to the cache, overwriting an existing item if one
	// exists. If expiration is 0 the item does not expire.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete removes an item from the cache.
	// It does not return an error if the key is not found.
	Delete(ctx context.Context, key string) error

	// Ping checks the health of the cache service.
	Ping(ctx context.Context) error

	// IncrementScore adds delta to member's score in the ranked set at key.
	IncrementScore(ctx context.Context, key, member string, delta float64) error

	// TopMembers returns up to n members of the ranked set at key,
	// highest score first.
	TopMembers(ctx context.Context, key string, n int64) ([]ScoredMember, error)
}
