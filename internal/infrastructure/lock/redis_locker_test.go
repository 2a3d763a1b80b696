package lock_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartpos-api/internal/infrastructure/lock"
	"github.com/jhoicas/smartpos-api/pkg/config"
)

const testKey = "smartpos:test:lock"

func newLocker(t *testing.T) (*lock.RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := lock.NewRedisClient(config.RedisConfig{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return lock.NewRedisLocker(client), mr
}

func TestRedisLocker_Exclusive(t *testing.T) {
	locker, mr := newLocker(t)
	ctx := context.Background()

	token, ok, err := locker.TryLock(ctx, testKey, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = locker.TryLock(ctx, testKey, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(2 * time.Minute)
	_, ok, err = locker.TryLock(ctx, testKey, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "el candado expira con su ttl")
}

func TestRedisLocker_ReleaseOnlyWithOwnToken(t *testing.T) {
	locker, mr := newLocker(t)
	ctx := context.Background()

	token, ok, err := locker.TryLock(ctx, testKey, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, locker.Release(ctx, testKey, "otro-token"))
	assert.True(t, mr.Exists(testKey))

	require.NoError(t, locker.Release(ctx, testKey, token))
	assert.False(t, mr.Exists(testKey))

	_, ok, err = locker.TryLock(ctx, testKey, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLocker_InvalidArgs(t *testing.T) {
	locker, _ := newLocker(t)
	ctx := context.Background()

	_, _, err := locker.TryLock(ctx, "", time.Minute)
	assert.Error(t, err)
	_, _, err = locker.TryLock(ctx, testKey, 0)
	assert.Error(t, err)
	assert.NoError(t, locker.Release(ctx, testKey, ""))
}
