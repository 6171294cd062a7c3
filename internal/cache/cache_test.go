package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestFakeCache(t *testing.T) {
	ctx := context.Background()
	c := &FakeCache{}
	require.Panics(t, func() { c.Get(ctx, "k") })
	require.Panics(t, func() { c.Incr(ctx, "k") })
	require.Panics(t, func() { c.Expire(ctx, "k", time.Second) })
	require.Panics(t, func() { c.Del(ctx, "k") })
	require.Equal(t, "PONG", c.Ping(ctx).Val())
	require.NoError(t, c.Close())

	var expired time.Duration
	var deleted []string
	c.GetFn = func(context.Context, string) *redis.StringCmd { return redis.NewStringResult("3", nil) }
	c.IncrFn = func(context.Context, string) *redis.IntCmd { return redis.NewIntResult(4, nil) }
	c.ExpireFn = func(_ context.Context, _ string, ttl time.Duration) *redis.BoolCmd {
		expired = ttl
		return redis.NewBoolResult(true, nil)
	}
	c.DelFn = func(_ context.Context, keys ...string) *redis.IntCmd {
		deleted = keys
		return redis.NewIntResult(int64(len(keys)), nil)
	}
	c.CloseFn = func() error { return errors.New("close") }

	require.Equal(t, "3", c.Get(ctx, "k").Val())
	require.EqualValues(t, 4, c.Incr(ctx, "k").Val())
	require.True(t, c.Expire(ctx, "k", time.Minute).Val())
	require.Equal(t, time.Minute, expired)
	require.EqualValues(t, 2, c.Del(ctx, "a", "b").Val())
	require.Equal(t, []string{"a", "b"}, deleted)
	require.EqualError(t, c.Close(), "close")
}
