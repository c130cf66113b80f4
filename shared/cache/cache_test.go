package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func newTestMemoryCache() (*memoryCache, *clock) {
	clk := &clock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	mem, _ := NewMemoryCache().(*memoryCache)
	mem.now = clk.Now

	return mem, clk
}

func TestNewRedisCache_NilClientFallsBackToMemory(t *testing.T) {
	_, ok := NewRedisCache(nil, nil).(*memoryCache)
	assert.True(t, ok)
}

func TestMemoryCache_SaveGetExpire(t *testing.T) {
	ctx := context.Background()
	mem, clk := newTestMemoryCache()

	type payload struct {
		Room string `json:"room"`
	}

	require.NoError(t, mem.Save(ctx, "k", payload{Room: "101"}, 10))
	require.NoError(t, mem.Save(ctx, "s", "plain", 0))

	var got payload
	require.NoError(t, mem.Get(ctx, "k", &got))
	assert.Equal(t, "101", got.Room)

	var str string
	require.NoError(t, mem.Get(ctx, "s", &str))
	assert.Equal(t, "plain", str)

	clk.now = clk.now.Add(10 * time.Second)

	err := mem.Get(ctx, "k", &got)
	assert.True(t, errors.Is(err, Nil))

	exist, err := mem.Exists(ctx, "s")
	require.NoError(t, err)
	assert.True(t, exist, "zero duration never expires")

	require.NoError(t, mem.Delete(ctx, "s"))

	exist, err = mem.Exists(ctx, "s")
	require.NoError(t, err)
	assert.False(t, exist)
}

func TestMemoryCache_IncrementWindow(t *testing.T) {
	ctx := context.Background()
	mem, clk := newTestMemoryCache()

	for want := int64(1); want <= 3; want++ {
		count, err := mem.Increment(ctx, "limiter:1.2.3.4", 60)
		require.NoError(t, err)
		assert.Equal(t, want, count)

		clk.now = clk.now.Add(10 * time.Second)
	}

	clk.now = clk.now.Add(30 * time.Second)

	count, err := mem.Increment(ctx, "limiter:1.2.3.4", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "a new window starts after expiry")
}

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "token:revoked:abc", BuildKey("token", "revoked", "abc"))
}
