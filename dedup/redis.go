package dedup

import (
	"context"
	"fmt"
	"log"

	"newsdesk/config"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the durable tracker store.
type RedisConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Key      string // redis key for the attempted-identifier set
}

// RedisTracker keeps the attempted set in a Redis SET so dedup survives
// process restarts. A session-local mirror backs every lookup, so a Redis
// outage degrades to in-memory behavior instead of failing a cycle.
type RedisTracker struct {
	client *redis.Client
	key    string
	local  *MemoryTracker
}

// NewRedisTracker connects and verifies connectivity before returning.
func NewRedisTracker(cfg RedisConfig) (*RedisTracker, error) {
	if cfg.Key == "" {
		cfg.Key = "newsdesk:attempted"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), config.RedisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &RedisTracker{
		client: client,
		key:    cfg.Key,
		local:  NewMemoryTracker(),
	}, nil
}

// Close closes the underlying Redis client.
func (t *RedisTracker) Close() error {
	return t.client.Close()
}

// IsEligible checks the session mirror first, then the durable set.
func (t *RedisTracker) IsEligible(id string) bool {
	if !t.local.IsEligible(id) {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.RedisTimeout)
	defer cancel()

	seen, err := t.client.SIsMember(ctx, t.key, id).Result()
	if err != nil {
		log.Printf("dedup: redis lookup failed: %v (using session set only)", err)
		return true
	}
	return !seen
}

// MarkAttempted records the identifier in both the mirror and the set.
func (t *RedisTracker) MarkAttempted(id string) {
	t.local.MarkAttempted(id)

	ctx, cancel := context.WithTimeout(context.Background(), config.RedisTimeout)
	defer cancel()

	if err := t.client.SAdd(ctx, t.key, id).Err(); err != nil {
		log.Printf("dedup: redis insert failed: %v (session set still holds %s)", err, id)
	}
}

// Count reports the durable set size, falling back to the session mirror.
func (t *RedisTracker) Count() int {
	ctx, cancel := context.WithTimeout(context.Background(), config.RedisTimeout)
	defer cancel()

	n, err := t.client.SCard(ctx, t.key).Result()
	if err != nil {
		return t.local.Count()
	}
	return int(n)
}
