package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPost struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	VoteCount int    `json:"vote_count"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedPost) func() error {
		return func() error {
			fetches++
			*dest = cachedPost{ID: 1, Title: "Hello", VoteCount: 1}
			return nil
		}
	}

	var first cachedPost
	require.NoError(t, Aside(ctx, PostKey(1), &first, PostTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "Hello", first.Title)

	// Second read must come from the cache, not the fetcher.
	var second cachedPost
	require.NoError(t, Aside(ctx, PostKey(1), &second, PostTTL, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorPropagates(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	wantErr := errors.New("db unavailable")
	var dest cachedPost
	err := Aside(ctx, PostKey(2), &dest, PostTTL, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	// A failed fetch must not populate the cache.
	found, err := GetJSON(ctx, PostKey(2), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_NoClientDegradesToFetch(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	fetches := 0
	var dest cachedPost
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(ctx, PostKey(3), &dest, PostTTL, func() error {
			fetches++
			dest = cachedPost{ID: 3}
			return nil
		}))
	}
	assert.Equal(t, 2, fetches)
}

func TestInvalidate(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(5), cachedPost{ID: 5}, PostTTL))
	require.True(t, mr.Exists(PostKey(5)))

	InvalidatePost(ctx, 5)
	assert.False(t, mr.Exists(PostKey(5)))
}

func TestSetJSON_TTL(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostsListKey, []cachedPost{{ID: 1}}, ListTTL))
	mr.FastForward(ListTTL + time.Second)

	var dest []cachedPost
	found, err := GetJSON(ctx, PostsListKey, &dest)
	require.NoError(t, err)
	assert.False(t, found)
}
