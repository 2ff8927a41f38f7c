package redis_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/products-api/go/internal/core/domain/product"
	"github.com/avatarctic/products-api/go/internal/infrastructure/redis"
)

func newTestCache(t *testing.T, prefix string) (*redis.HashCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewHashCache(client, prefix, time.Second, product.Coerce), mr
}

func TestHashCache_PutStringifiesAndGetCoerces(t *testing.T) {
	c, mr := newTestCache(t, "")
	ctx := context.Background()

	err := c.Put(ctx, "507f1f77bcf86cd799439011", map[string]any{"name": "Widget", "country": "US", "price": int64(10), "stock": 3})
	require.NoError(t, err)

	assert.Equal(t, "10", mr.HGet("507f1f77bcf86cd799439011", "price"))
	assert.Equal(t, "3", mr.HGet("507f1f77bcf86cd799439011", "stock"))

	fields, ok, err := c.Get(ctx, "507f1f77bcf86cd799439011")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "Widget", "country": "US", "price": int64(10), "stock": int64(3)}, fields)
}

func TestHashCache_PutReplacesEntry(t *testing.T) {
	c, mr := newTestCache(t, "")
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "k", map[string]any{"name": "Old", "description": "stale"}))
	require.NoError(t, c.Put(ctx, "k", map[string]any{"name": "New"}))

	keys, err := mr.HKeys("k")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, keys)
	assert.Equal(t, "New", mr.HGet("k", "name"))
}

func TestHashCache_MissingAndEmptyAreMisses(t *testing.T) {
	c, _ := newTestCache(t, "")
	fields, ok, err := c.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, fields)

	require.NoError(t, c.Put(context.Background(), "empty", map[string]any{}))
	_, ok, err = c.Get(context.Background(), "empty")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashCache_UndecodableIntIsDecodeError(t *testing.T) {
	c, mr := newTestCache(t, "")
	mr.HSet("bad", "name", "Widget")
	mr.HSet("bad", "country", "US")
	mr.HSet("bad", "price", "ten")

	before := testutil.ToFloat64(redis.GetCacheOperations().WithLabelValues("get", "decode_error"))
	_, ok, err := c.Get(context.Background(), "bad")
	require.ErrorIs(t, err, product.ErrCacheDecode)
	assert.False(t, ok)
	assert.Equal(t, before+1, testutil.ToFloat64(redis.GetCacheOperations().WithLabelValues("get", "decode_error")))
}

func TestHashCache_NilCoercerKeepsStrings(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()
	c := redis.NewHashCache(client, "", time.Second, nil)

	require.NoError(t, c.Put(context.Background(), "k", map[string]any{"price": 10}))
	fields, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "10", fields["price"])
}

func TestHashCache_PrefixNamespacesKeys(t *testing.T) {
	c, mr := newTestCache(t, "products")
	require.NoError(t, c.Put(context.Background(), "abc", map[string]any{"name": "Widget"}))
	assert.True(t, mr.Exists("products:abc"))
	assert.False(t, mr.Exists("abc"))
}

func TestHashCache_DeleteFieldsAndKey(t *testing.T) {
	c, mr := newTestCache(t, "")
	ctx := context.Background()
	require.NoError(t, c.Put(ctx, "k", map[string]any{"name": "Widget", "country": "US", "price": 1}))

	require.NoError(t, c.Delete(ctx, "k", "price"))
	keys, err := mr.HKeys("k")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"country", "name"}, keys)

	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))

	require.NoError(t, c.Delete(ctx, "never-existed", "name"))
}

func TestHashCache_BackendErrorIsCacheUnavailable(t *testing.T) {
	c, mr := newTestCache(t, "")
	mr.SetError("LOADING server is loading")

	_, _, err := c.Get(context.Background(), "k")
	require.ErrorIs(t, err, product.ErrCacheUnavailable)

	err = c.Put(context.Background(), "k", map[string]any{"name": "Widget"})
	require.ErrorIs(t, err, product.ErrCacheUnavailable)

	err = c.Delete(context.Background(), "k", "name")
	require.ErrorIs(t, err, product.ErrCacheUnavailable)
}
