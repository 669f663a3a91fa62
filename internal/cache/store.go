// Package cache stores backend reference data (bands, capabilities,
// locations) between requests.
package cache

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is a byte-oriented TTL cache.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// RedisStore shares cached entries across front-end instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore caches under "refdata:<key>" with the given TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, prefix: "refdata:"}
}

// Get returns the cached value or ErrMiss.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return val, err
}

// Set stores the value with the store TTL.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.prefix+key, value, s.ttl).Err()
}

// MemoryStore is the in-process fallback used when Redis is not configured.
type MemoryStore struct {
	lru *lru.LRU[string, []byte]
}

// NewMemoryStore keeps up to size entries for ttl each.
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = 64
	}
	return &MemoryStore{lru: lru.NewLRU[string, []byte](size, nil, ttl)}
}

// Get returns the cached value or ErrMiss.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	val, ok := s.lru.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return val, nil
}

// Set stores the value.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.lru.Add(key, value)
	return nil
}
