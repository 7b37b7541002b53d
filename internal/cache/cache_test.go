package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	t.Cleanup(func() { client = nil })
	require.NotNil(t, GetClient())
	return mr
}

type cachedUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestAside_FetchesOnceThenServesFromCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			dest.ID = 7
			dest.Name = "Ada"
			return nil
		}
	}

	var first cachedUser
	err := Aside(ctx, UserKey(7), &first, UserTTL, fetch(&first))
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)

	var second cachedUser
	err = Aside(ctx, UserKey(7), &second, UserTTL, fetch(&second))
	require.NoError(t, err)
	assert.Equal(t, 1, fetches, "second read should be served from cache")
	assert.Equal(t, first, second)
}

func TestInvalidateUser_ForcesRefetch(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	load := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			dest.ID = 3
			return nil
		}
	}

	var u cachedUser
	require.NoError(t, Aside(ctx, UserKey(3), &u, UserTTL, load(&u)))
	InvalidateUser(ctx, 3)
	require.NoError(t, Aside(ctx, UserKey(3), &u, UserTTL, load(&u)))
	assert.Equal(t, 2, fetches)
}

func TestAside_ExpiredEntryRefetches(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	load := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			dest.ID = 9
			return nil
		}
	}

	var u cachedUser
	require.NoError(t, Aside(ctx, UserKey(9), &u, time.Minute, load(&u)))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, Aside(ctx, UserKey(9), &u, time.Minute, load(&u)))
	assert.Equal(t, 2, fetches)
}

func TestAside_NoClientFallsThrough(t *testing.T) {
	client = nil
	ctx := context.Background()

	fetches := 0
	var u cachedUser
	err := Aside(ctx, UserKey(1), &u, UserTTL, func() error {
		fetches++
		u.ID = 1
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
}
