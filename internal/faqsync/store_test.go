package faqsync

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStateStore(time.Minute)

	s, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, s.MinInterval)
	assert.Empty(t, s.LastHash)

	require.NoError(t, m.Save(ctx, s.Synced(time.Now(), "h1")))
	s, _ = m.Load(ctx)
	assert.Equal(t, "h1", s.LastHash)
}

func TestRedisStateStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	store := NewRedisStateStore(client, "", 30*time.Second)

	s, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, s.LastSync.IsZero())
	assert.Equal(t, 30*time.Second, s.MinInterval)

	at := time.UnixMilli(1714564800123)
	require.NoError(t, store.Save(ctx, s.Synced(at, "abc")))
	assert.Equal(t, "abc", mr.HGet(defaultStateKey, "hash"))

	// a second store on the same key sees the state
	other := NewRedisStateStore(client, defaultStateKey, 30*time.Second)
	s, err = other.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", s.LastHash)
	assert.True(t, at.Equal(s.LastSync))
}

func TestRedisStateStore_BadTimestamp(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	mr.HSet("k", "last_sync", "yesterday")
	_, err := NewRedisStateStore(client, "k", 0).Load(context.Background())
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	c, err := NewRedisClient("redis://localhost:6379/2")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Options().DB)
	_ = c.Close()

	_, err = NewRedisClient("http://nope")
	assert.Error(t, err)
}
