package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blocklist records revoked token ids until their natural expiry.
type Blocklist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const blocklistKeyPrefix = "recallbox:revoked:"

// RedisBlocklist stores revoked jtis in Redis with a TTL matching the
// token's remaining lifetime, so entries clean themselves up.
type RedisBlocklist struct {
	client *redis.Client
}

func NewRedisBlocklist(client *redis.Client) *RedisBlocklist {
	return &RedisBlocklist{client: client}
}

func (b *RedisBlocklist) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, blocklistKeyPrefix+jti, "1", ttl).Err()
}

func (b *RedisBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blocklistKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryBlocklist is an in-process Blocklist used when Redis is not
// configured. Expired entries are pruned on each write.
type MemoryBlocklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryBlocklist() *MemoryBlocklist {
	return &MemoryBlocklist{revoked: make(map[string]time.Time)}
}

func (b *MemoryBlocklist) Revoke(_ context.Context, jti string, until time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	for id, exp := range b.revoked {
		if exp.Before(now) {
			delete(b.revoked, id)
		}
	}
	if until.After(now) {
		b.revoked[jti] = until
	}
	return nil
}

func (b *MemoryBlocklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	until, ok := b.revoked[jti]
	return ok && until.After(time.Now()), nil
}
