package auth

import (
	"context"
	"encoding/hex"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

// Revocations tracks tokens that were logged out before their expiry.
type Revocations interface {
	Revoke(ctx context.Context, token string, until time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// tokenDigest keys revocation entries without storing the token itself.
func tokenDigest(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// RedisRevocations shares the revocation list across front-end instances.
type RedisRevocations struct {
	client *redis.Client
	prefix string
}

// NewRedisRevocations stores entries under "revoked:<digest>".
func NewRedisRevocations(client *redis.Client) *RedisRevocations {
	return &RedisRevocations{client: client, prefix: "revoked:"}
}

// Revoke marks the token revoked until it would have expired anyway.
func (r *RedisRevocations) Revoke(ctx context.Context, token string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.prefix+tokenDigest(token), "1", ttl).Err()
}

// IsRevoked reports whether the token was revoked.
func (r *RedisRevocations) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+tokenDigest(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryRevocations is the single-instance fallback when Redis is not configured.
type MemoryRevocations struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocations creates an empty in-process revocation list.
func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{entries: make(map[string]time.Time), now: time.Now}
}

// Revoke marks the token revoked until the given time.
func (m *MemoryRevocations) Revoke(_ context.Context, token string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if !until.After(now) {
		return nil
	}
	m.prune(now)
	m.entries[tokenDigest(token)] = until
	return nil
}

// IsRevoked reports whether the token is still on the list.
func (m *MemoryRevocations) IsRevoked(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, ok := m.entries[tokenDigest(token)]
	if !ok {
		return false, nil
	}
	if !until.After(m.now()) {
		delete(m.entries, tokenDigest(token))
		return false, nil
	}
	return true, nil
}

// prune drops expired entries; caller holds mu.
func (m *MemoryRevocations) prune(now time.Time) {
	for key, until := range m.entries {
		if !until.After(now) {
			delete(m.entries, key)
		}
	}
}
