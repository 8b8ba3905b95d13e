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

func setupTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type cachedProfile struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestGetSetJSONRoundTrip(t *testing.T) {
	setupTestCache(t)
	ctx := context.Background()

	SetJSON(ctx, UserKey(1), cachedProfile{ID: 1, Name: "Alice"}, UserTTL)

	var got cachedProfile
	require.True(t, GetJSON(ctx, UserKey(1), &got))
	assert.Equal(t, "Alice", got.Name)
}

func TestGetJSONMissAndCorruptEntry(t *testing.T) {
	mr := setupTestCache(t)
	ctx := context.Background()

	var got cachedProfile
	assert.False(t, GetJSON(ctx, UserKey(404), &got))

	// A corrupt entry is dropped instead of poisoning every later read
	require.NoError(t, mr.Set(UserKey(2), "{not json"))
	assert.False(t, GetJSON(ctx, UserKey(2), &got))
	assert.False(t, mr.Exists(UserKey(2)))
}

func TestAside(t *testing.T) {
	t.Run("miss loads and caches", func(t *testing.T) {
		setupTestCache(t)
		ctx := context.Background()

		loads := 0
		load := func(dest *cachedProfile) func() error {
			return func() error {
				loads++
				*dest = cachedProfile{ID: 7, Name: "Bob"}
				return nil
			}
		}

		var first cachedProfile
		require.NoError(t, Aside(ctx, UserKey(7), &first, UserTTL, load(&first)))
		assert.Equal(t, 1, loads)

		var second cachedProfile
		require.NoError(t, Aside(ctx, UserKey(7), &second, UserTTL, load(&second)))
		assert.Equal(t, 1, loads, "second read should hit the cache")
		assert.Equal(t, "Bob", second.Name)
	})

	t.Run("load error passes through and nothing is cached", func(t *testing.T) {
		mr := setupTestCache(t)
		ctx := context.Background()

		sentinel := errors.New("db down")
		var dest cachedProfile
		err := Aside(ctx, UserKey(8), &dest, UserTTL, func() error { return sentinel })
		assert.ErrorIs(t, err, sentinel)
		assert.False(t, mr.Exists(UserKey(8)))
	})

	t.Run("works without a client", func(t *testing.T) {
		SetClient(nil)
		var dest cachedProfile
		err := Aside(context.Background(), UserKey(9), &dest, UserTTL, func() error {
			dest = cachedProfile{ID: 9, Name: "Carol"}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Carol", dest.Name)
	})
}

func TestInvalidateUser(t *testing.T) {
	mr := setupTestCache(t)
	ctx := context.Background()

	SetJSON(ctx, UserKey(1), cachedProfile{ID: 1}, UserTTL)
	SetJSON(ctx, RatingSummaryKey(1), map[string]int{"totalRatings": 3}, RatingSummaryTTL)

	InvalidateUser(ctx, 1)
	assert.False(t, mr.Exists(UserKey(1)))
	assert.False(t, mr.Exists(RatingSummaryKey(1)))
}

func TestInvalidateBrowse(t *testing.T) {
	mr := setupTestCache(t)
	ctx := context.Background()

	SetJSON(ctx, BrowseKey("guitar", "", 1, 20), []uint{1, 2}, BrowseTTL)
	SetJSON(ctx, BrowseKey("", "berlin", 2, 20), []uint{3}, BrowseTTL)
	SetJSON(ctx, UserKey(1), cachedProfile{ID: 1}, UserTTL)

	InvalidateBrowse(ctx)
	assert.False(t, mr.Exists(BrowseKey("guitar", "", 1, 20)))
	assert.False(t, mr.Exists(BrowseKey("", "berlin", 2, 20)))
	// Unrelated keys survive
	assert.True(t, mr.Exists(UserKey(1)))
}

func TestHealthy(t *testing.T) {
	mr := setupTestCache(t)
	assert.True(t, Healthy(context.Background()))

	mr.Close()
	assert.False(t, Healthy(context.Background()))

	SetClient(nil)
	assert.False(t, Healthy(context.Background()))
}
