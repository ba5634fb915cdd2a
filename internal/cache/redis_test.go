package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heron-feed/internal/models"
	"heron-feed/internal/utils"
)

func newTestRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r := NewRedis(&redis.Options{Addr: mr.Addr()}, ttl)
	t.Cleanup(func() { r.Close() })
	return r, mr
}

func TestRedisPutGet(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRedis(t, 0)

	author := &models.Author{ID: "u1", DisplayName: "Ann", Name: "ann", AvatarSrc: "ann.png"}
	require.NoError(t, r.Put(ctx, author))

	got, err := r.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, author, got)
}

func TestRedisGetMissing(t *testing.T) {
	r, _ := newTestRedis(t, 0)
	_, err := r.Get(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestRedisEntriesExpire(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t, time.Minute)

	require.NoError(t, r.Put(ctx, &models.Author{ID: "u1", DisplayName: "Ann"}))

	mr.FastForward(2 * time.Minute)

	_, err := r.Get(ctx, "u1")
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestRedisPing(t *testing.T) {
	r, mr := newTestRedis(t, 0)
	assert.NoError(t, r.Ping(context.Background()))

	mr.Close()
	assert.Error(t, r.Ping(context.Background()))
}
