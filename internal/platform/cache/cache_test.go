package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestNew_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := New(context.Background(), mr.Addr())
	require.NoError(t, err)
	_ = client.Close()

	_, err = New(context.Background(), "127.0.0.1:1")
	assert.Error(t, err)
}

func TestAccountTypeCache_RoundTrip(t *testing.T) {
	mr, client := newTestClient(t)
	c := NewAccountTypeCache(client, time.Minute)
	ctx := context.Background()

	_, ok, err := c.GetActiveAccountTypes(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	types := domain.DefaultAccountTypes()
	require.NoError(t, c.SetActiveAccountTypes(ctx, types))

	got, ok, err := c.GetActiveAccountTypes(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, len(types))
	assert.Equal(t, "LIVRET_A", got[0].Code)
	assert.True(t, got[0].DepositCeiling.Equal(types[0].DepositCeiling))

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.GetActiveAccountTypes(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccountTypeCache_Invalidate(t *testing.T) {
	_, client := newTestClient(t)
	c := NewAccountTypeCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetActiveAccountTypes(ctx, domain.DefaultAccountTypes()))
	require.NoError(t, c.InvalidateAccountTypes(ctx))
	_, ok, err := c.GetActiveAccountTypes(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccountTypeCache_CorruptEntryIsMiss(t *testing.T) {
	mr, client := newTestClient(t)
	c := NewAccountTypeCache(client, time.Minute)
	require.NoError(t, mr.Set(activeAccountTypesKey, "{not json"))

	_, ok, err := c.GetActiveAccountTypes(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocker_SingleHolder(t *testing.T) {
	mr, client := newTestClient(t)
	locker := NewLocker(client)
	ctx := context.Background()

	lock, err := locker.Acquire(ctx, SweepLockKey, time.Minute)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, SweepLockKey, time.Minute)
	assert.ErrorIs(t, err, ErrLockHeld)

	require.NoError(t, lock.Release(ctx))
	assert.False(t, mr.Exists(SweepLockKey))

	again, err := locker.Acquire(ctx, SweepLockKey, time.Minute)
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}

func TestLock_ReleaseKeepsForeignHolder(t *testing.T) {
	mr, client := newTestClient(t)
	locker := NewLocker(client)
	ctx := context.Background()

	lock, err := locker.Acquire(ctx, SweepLockKey, time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	other, err := locker.Acquire(ctx, SweepLockKey, time.Minute)
	require.NoError(t, err)

	require.NoError(t, lock.Release(ctx))
	assert.True(t, mr.Exists(SweepLockKey), "stale holder must not delete the new holder's lock")
	require.NoError(t, other.Release(ctx))
}
