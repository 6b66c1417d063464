package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*RedisCacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCacheServiceWithClient(client, ttl, zap.NewNop()), mr
}

func TestCacheService(t *testing.T) {
	ctx := context.Background()
	cs := NewCacheService(2, time.Hour)

	_, found, err := cs.Get(ctx, "уфа")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cs.Set(ctx, "уфа", []string{"Уфа", "Республика Башкортостан"}))
	got, found, err := cs.Get(ctx, "уфа")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"Уфа", "Республика Башкортостан"}, got)

	got[0] = "испорчено"
	again, _, _ := cs.Get(ctx, "уфа")
	assert.Equal(t, "Уфа", again[0])

	require.NoError(t, cs.Set(ctx, "раевка", nil))
	require.NoError(t, cs.Set(ctx, "ким", nil))
	assert.Equal(t, 2, cs.Size(), "least recently used key is evicted")

	require.NoError(t, cs.Delete(ctx, "ким"))
	assert.Equal(t, 1, cs.Size())

	require.NoError(t, cs.Clear(ctx))
	stats, err := cs.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &CacheStats{Backend: "memory"}, stats)
}

func TestRedisCacheService(t *testing.T) {
	ctx := context.Background()
	rcs, mr := newRedisCache(t, time.Hour)

	_, found, err := rcs.Get(ctx, "уфа")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, rcs.Set(ctx, "уфа", []string{"Уфа"}))
	assert.True(t, mr.Exists(redisKeyPrefix+"уфа"))

	got, found, err := rcs.Get(ctx, "уфа")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"Уфа"}, got)

	ttl, err := rcs.GetTTL(ctx, "уфа")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	require.NoError(t, rcs.Set(ctx, "москва", nil))
	empty, found, err := rcs.Get(ctx, "москва")
	require.NoError(t, err)
	assert.True(t, found, "an empty answer is still an answer")
	assert.Empty(t, empty)

	mr.Set("unrelated", "keep")

	stats, err := rcs.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalItems)
	assert.Equal(t, int64(2), stats.TotalHits)
	assert.Equal(t, int64(1), stats.TotalMiss)

	require.NoError(t, rcs.Clear(ctx))
	assert.False(t, mr.Exists(redisKeyPrefix+"уфа"))
	assert.True(t, mr.Exists("unrelated"))

	mr.FastForward(2 * time.Hour)
	require.NoError(t, rcs.Set(ctx, "уфа", []string{"Уфа"}))
	mr.FastForward(2 * time.Hour)
	_, found, err = rcs.Get(ctx, "уфа")
	require.NoError(t, err)
	assert.False(t, found, "entries expire")
}

func TestRedisCacheService_Errors(t *testing.T) {
	ctx := context.Background()
	rcs, mr := newRedisCache(t, time.Hour)

	mr.Set(redisKeyPrefix+"broken", "{not json")
	_, _, err := rcs.Get(ctx, "broken")
	assert.Error(t, err)

	offline := NewRedisCacheServiceWithClient(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	}), time.Hour, nil)
	_, _, err = offline.Get(ctx, "уфа")
	assert.Error(t, err)
	assert.Error(t, offline.Set(ctx, "уфа", []string{"Уфа"}))
}

func TestNewRedisCacheService_BadURL(t *testing.T) {
	_, err := NewRedisCacheService("not a url", time.Hour, nil)
	assert.Error(t, err)
}

func TestHybridCacheService(t *testing.T) {
	ctx := context.Background()
	l1 := NewCacheService(10, time.Hour)
	l2, mr := newRedisCache(t, time.Hour)
	hcs := NewHybridCacheService(l1, l2, nil)

	require.NoError(t, l2.Set(ctx, "уфа", []string{"Уфа"}))

	got, found, err := hcs.Get(ctx, "уфа")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"Уфа"}, got)
	assert.Equal(t, 1, l1.Size(), "L2 hit is copied into L1")

	require.NoError(t, hcs.Set(ctx, "раевка", []string{"село Раевский"}))
	assert.True(t, mr.Exists(redisKeyPrefix+"раевка"))

	_, found, err = hcs.Get(ctx, "москва")
	require.NoError(t, err)
	assert.False(t, found)

	stats, err := hcs.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hybrid", stats.Backend)
	assert.Equal(t, int64(2), stats.TotalItems)

	require.NoError(t, hcs.Delete(ctx, "раевка"))
	assert.False(t, mr.Exists(redisKeyPrefix+"раевка"))

	require.NoError(t, hcs.Clear(ctx))
	assert.Equal(t, 0, l1.Size())
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, fingerprint("уфа"), fingerprint("уфа"))
	assert.NotEqual(t, fingerprint("уфа"), fingerprint("уфа аэропорт"))
	assert.Contains(t, fingerprint("уфа"), "sha256:")
}
