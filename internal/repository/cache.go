package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/crime_map/internal/config"
	"github.com/shenikar/crime_map/internal/service"
)

const memoryCacheMaxEntries = 4096

// NewCache выбирает бэкенд кэша по CACHE_TYPE. redisClient нужен только для redis.
func NewCache(cfg *config.Config, redisClient *redis.Client) (service.Cache, error) {
	switch cfg.CacheType {
	case config.CacheRedis:
		if redisClient == nil {
			return nil, errors.New("redis cache requires a redis client")
		}
		return NewRedisCache(redisClient, cfg.CacheKeyPrefix), nil
	case config.CacheMemory:
		return NewMemoryCache(memoryCacheMaxEntries), nil
	case config.CacheNull:
		return NullCache{}, nil
	}
	return nil, fmt.Errorf("unsupported cache type %q", cfg.CacheType)
}

// RedisCache хранит сериализованные ответы в Redis
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s from cache: %w", key, err)
	}
	return val, true, nil
}

// Set с ttl == 0 сохраняет значение без срока жизни
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}
	return nil
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache - кэш в памяти процесса (CACHE_TYPE=simple)
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	maxEntries int
	now        func() time.Time
}

func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if entry.expired(c.now()) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evict(now)
	}

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}
	c.entries[key] = entry
	return nil
}

// evict drops expired entries, then arbitrary ones until there is room.
func (c *MemoryCache) evict(now time.Time) {
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
		}
	}
	for key := range c.entries {
		if len(c.entries) < c.maxEntries {
			return
		}
		delete(c.entries, key)
	}
}

// NullCache ничего не хранит
type NullCache struct{}

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
