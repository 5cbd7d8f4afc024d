package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedCafe struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func withMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		_ = rdb.Close()
		mr.Close()
	})
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	mr := withMiniRedis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedCafe) func() error {
		return func() error {
			calls++
			*dest = cachedCafe{ID: 1, Name: "Bean There"}
			return nil
		}
	}

	var first cachedCafe
	require.NoError(t, Aside(ctx, CafeKey(1), &first, CafeTTL, fetch(&first)))
	assert.Equal(t, "Bean There", first.Name)
	assert.True(t, mr.Exists(CafeKey(1)))

	var second cachedCafe
	require.NoError(t, Aside(ctx, CafeKey(1), &second, CafeTTL, fetch(&second)))
	assert.Equal(t, "Bean There", second.Name)
	assert.Equal(t, 1, calls, "second read must come from Redis")
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	mr := withMiniRedis(t)

	var dest cachedCafe
	err := Aside(context.Background(), CafeKey(2), &dest, CafeTTL, func() error {
		return errors.New("not found")
	})
	assert.Error(t, err)
	assert.False(t, mr.Exists(CafeKey(2)))
}

func TestAside_NoClient(t *testing.T) {
	SetClient(nil)

	var dest cachedCafe
	calls := 0
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(context.Background(), CafeKey(3), &dest, CafeTTL, func() error {
			calls++
			return nil
		}))
	}
	assert.Equal(t, 2, calls)
}

func TestInvalidateCafe(t *testing.T) {
	mr := withMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, CafeKey(4), cachedCafe{ID: 4}, CafeTTL))
	InvalidateCafe(ctx, 4)
	assert.False(t, mr.Exists(CafeKey(4)))
}

func TestParseAddr(t *testing.T) {
	opts, err := ParseAddr("localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)

	opts, err = ParseAddr("redis://:secret@cache:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)

	_, err = ParseAddr("  ")
	assert.Error(t, err)
	_, err = ParseAddr("redis://cache:6380/notadb")
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	prev := GetClient()
	t.Cleanup(func() { SetClient(prev) })

	mr := miniredis.RunT(t)
	c, err := Connect(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	assert.Same(t, c, GetClient())
}

func TestConnectOptional_Unreachable(t *testing.T) {
	prev := GetClient()
	t.Cleanup(func() { SetClient(prev) })

	assert.Nil(t, ConnectOptional(context.Background(), "redis://127.0.0.1:1/0"))
	assert.Nil(t, GetClient())
}
