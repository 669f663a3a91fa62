package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "bands")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, store.Set(ctx, "bands", []byte(`[{"bandId":1}]`)))
	val, err := store.Get(ctx, "bands")
	require.NoError(t, err)
	assert.Equal(t, `[{"bandId":1}]`, string(val))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(8, 50*time.Millisecond)
	exerciseStore(t, store)

	time.Sleep(120 * time.Millisecond)
	_, err := store.Get(context.Background(), "bands")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, time.Minute)
	exerciseStore(t, store)
	assert.True(t, mr.Exists("refdata:bands"))

	mr.FastForward(2 * time.Minute)
	_, err := store.Get(context.Background(), "bands")
	assert.ErrorIs(t, err, ErrMiss)
}
