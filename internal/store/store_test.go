package store

import (
	"context"
	"sort"
	"testing"
	"time"

	"argynix-connect/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisKV(t *testing.T) (*RedisKV, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisKV(client), mr
}

func TestRedisKV_GetSetDelete(t *testing.T) {
	kv, mr := newRedisKV(t)
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "a", "1", time.Minute))
	v, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
	assert.Equal(t, time.Minute, mr.TTL("a"))

	require.NoError(t, kv.Delete(ctx, "a"))
	_, err = kv.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisKV_ScanKeys(t *testing.T) {
	kv, _ := newRedisKV(t)
	ctx := context.Background()
	for _, k := range []string{"poll:jobs", "poll:notifications", "other"} {
		require.NoError(t, kv.Set(ctx, k, "x", 0))
	}

	keys, err := kv.ScanKeys(ctx, "poll:*")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"poll:jobs", "poll:notifications"}, keys)
}

func TestMemoryKV_Expiry(t *testing.T) {
	kv := NewMemoryKV()
	now := time.Unix(1000, 0)
	kv.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "s", "v", time.Second))
	require.NoError(t, kv.Set(ctx, "p", "v", 0))

	v, err := kv.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	now = now.Add(2 * time.Second)
	_, err = kv.Get(ctx, "s")
	assert.ErrorIs(t, err, ErrMiss)

	keys, err := kv.ScanKeys(ctx, "*")
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, keys)
}

func TestSessionStore_RoundTripOnRedis(t *testing.T) {
	kv, mr := newRedisKV(t)
	s := NewSessionStore(kv, time.Hour)
	ctx := context.Background()

	sess := &domain.Session{ID: "sid", Token: "tok", InstanceURL: "https://tb.example.com", CustomerID: "c1"}
	require.NoError(t, s.Save(ctx, sess))
	assert.Equal(t, time.Hour, mr.TTL(sessionKeyPrefix+"sid"))

	got, err := s.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, "c1", got.CustomerID)

	require.NoError(t, s.Delete(ctx, "sid"))
	_, err = s.Get(ctx, "sid")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_ExpiredAndEmpty(t *testing.T) {
	s := NewSessionStore(NewMemoryKV(), time.Hour)
	ctx := context.Background()

	err := s.Save(ctx, &domain.Session{ID: "old", ExpiresAt: time.Now().Add(-time.Minute)})
	assert.Error(t, err)

	_, err = s.Get(ctx, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
