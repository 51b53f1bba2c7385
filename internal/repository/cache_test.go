package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shenikar/crime_map/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10)

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	val, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(10)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "short", []byte("1"), time.Second))
	require.NoError(t, c.Set(ctx, "forever", []byte("2"), 0))

	now = now.Add(2 * time.Second)

	_, ok, _ := c.Get(ctx, "short")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "forever")
	assert.True(t, ok)
}

func TestMemoryCache_EvictsWhenFull(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(3)

	for i := 0; i < 10; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), time.Minute))
		assert.LessOrEqual(t, len(c.entries), 3)
	}
	_, ok, _ := c.Get(ctx, "k9")
	assert.True(t, ok)
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NullCache{}

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewCache(t *testing.T) {
	c, err := NewCache(&config.Config{CacheType: config.CacheMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	c, err = NewCache(&config.Config{CacheType: config.CacheNull}, nil)
	require.NoError(t, err)
	assert.IsType(t, NullCache{}, c)

	_, err = NewCache(&config.Config{CacheType: config.CacheRedis}, nil)
	assert.Error(t, err)

	_, err = NewCache(&config.Config{CacheType: "memcached"}, nil)
	assert.Error(t, err)
}
