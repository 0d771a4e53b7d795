package service

import (
	"context"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"product-console/internal/entity"
	"testing"
	"time"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisCache(rdb, ttl), mr
}

func TestRedisCacheMiss(t *testing.T) {
	cache, _ := newTestRedisCache(t, time.Minute)

	product, err := cache.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestRedisCacheSetGet(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t, time.Minute)

	want := &entity.Product{ID: 3, Name: "Lamp", Description: "desk", Category: "Home", Nulls: entity.ColumnPrice}
	require.NoError(t, cache.Set(ctx, want))
	assert.True(t, mr.Exists("product:3"))
	assert.Equal(t, time.Minute, mr.TTL("product:3"))

	got, err := cache.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.IsNull(entity.ColumnPrice))
}

func TestRedisCacheEntriesExpire(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t, time.Minute)

	require.NoError(t, cache.Set(ctx, &entity.Product{ID: 1, Name: "Pen", Price: 2}))
	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCacheZeroTTLKeepsEntries(t *testing.T) {
	cache, mr := newTestRedisCache(t, 0)

	require.NoError(t, cache.Set(context.Background(), &entity.Product{ID: 1, Name: "Pen", Price: 2}))
	assert.Equal(t, time.Duration(0), mr.TTL("product:1"))
}

func TestRedisCacheDelete(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t, time.Minute)

	require.NoError(t, cache.Set(ctx, &entity.Product{ID: 5, Name: "Cup", Price: 4}))
	require.NoError(t, cache.Delete(ctx, 5))
	assert.False(t, mr.Exists("product:5"))

	// deleting a missing key is not an error
	require.NoError(t, cache.Delete(ctx, 5))
}

func TestRedisCacheCorruptEntry(t *testing.T) {
	cache, mr := newTestRedisCache(t, time.Minute)
	require.NoError(t, mr.Set("product:1", "not json"))

	got, err := cache.Get(context.Background(), 1)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "unmarshal cached product 1")
}

func TestRedisCacheServerDown(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t, time.Minute)
	mr.Close()

	_, err := cache.Get(ctx, 1)
	assert.Error(t, err)
	assert.Error(t, cache.Set(ctx, &entity.Product{ID: 1, Name: "Pen", Price: 2}))
	assert.Error(t, cache.Delete(ctx, 1))
}
