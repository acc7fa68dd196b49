package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryCacheManager_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "a", "value", time.Minute)

	got, ok := cache.Get(ctx, "a")
	require.True(t, ok)
	require.Equal(t, "value", got)
}

func TestInMemoryCacheManager_GetMissing(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(ctx, "absent")
	require.False(t, ok)
	require.Zero(t, got)
}

func TestInMemoryCacheManager_Delete(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "a", "value", time.Minute)
	require.NoError(t, cache.Delete(ctx, "a"))

	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)
}

func TestInMemoryCacheManager_Flush(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "a", "one", time.Minute)
	cache.Set(ctx, "b", "two", time.Minute)
	require.NoError(t, cache.Flush(ctx))

	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)
	_, ok = cache.Get(ctx, "b")
	require.False(t, ok)
}

func TestReadThroughCache_LoadsOnMiss(t *testing.T) {
	ctx := context.Background()
	calls := 0
	loader := func(ctx context.Context, input string) (string, error) {
		calls++
		return "rendered:" + input, nil
	}
	rtc := NewReadThroughCache[string, string, string](
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval),
		loader, false)

	got, err := rtc.Get(ctx, "k", "S001", time.Minute)
	require.NoError(t, err)
	require.Equal(t, "rendered:S001", got)
	require.Equal(t, 1, calls)

	// Second get hits the cache.
	got, err = rtc.Get(ctx, "k", "S001", time.Minute)
	require.NoError(t, err)
	require.Equal(t, "rendered:S001", got)
	require.Equal(t, 1, calls)
}

func TestReadThroughCache_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	calls := 0
	loader := func(ctx context.Context, input string) (string, error) {
		calls++
		return "", boom
	}
	rtc := NewReadThroughCache[string, string, string](
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval),
		loader, false)

	_, err := rtc.Get(ctx, "k", "S001", time.Minute)
	require.ErrorIs(t, err, boom)
	_, err = rtc.Get(ctx, "k", "S001", time.Minute)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, calls)
}

func TestReadThroughCache_FlushForcesReload(t *testing.T) {
	ctx := context.Background()
	calls := 0
	loader := func(ctx context.Context, input string) (string, error) {
		calls++
		return "v", nil
	}
	rtc := NewReadThroughCache[string, string, string](
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval),
		loader, false)

	_, err := rtc.Get(ctx, "k", "", time.Minute)
	require.NoError(t, err)
	require.NoError(t, rtc.Flush(ctx))
	_, err = rtc.Get(ctx, "k", "", time.Minute)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestReadThroughCache_SkipCache(t *testing.T) {
	ctx := context.Background()
	calls := 0
	loader := func(ctx context.Context, input string) (string, error) {
		calls++
		return "v", nil
	}
	rtc := NewReadThroughCache[string, string, string](
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval),
		loader, true)

	_, err := rtc.Get(ctx, "k", "", time.Minute)
	require.NoError(t, err)
	_, err = rtc.Get(ctx, "k", "", time.Minute)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}
