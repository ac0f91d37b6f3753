package taskstore

import (
	"context"
	"testing"
	"time"

	"github.com/EnspikondPlus/neophytic-rooms-purple-base/a2a"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, ttlSeconds int) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewRedis(client, ttlSeconds)
	require.NoError(t, err)
	return store, mr
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a client", func(t *testing.T) {
		_, err := NewRedis(nil, 60)
		assert.Error(t, err)
	})

	t.Run("save and retrieve", func(t *testing.T) {
		store, _ := newTestRedisStore(t, 60)

		task := a2a.NewTask(a2a.NewAgentTextMessage("hello", "ctx-1", ""))
		require.NoError(t, store.Save(ctx, task))

		got, err := store.ByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, "ctx-1", got.ContextID)
		assert.Equal(t, a2a.TaskStateSubmitted, got.Status.State)
		assert.Len(t, got.History, 1)
	})

	t.Run("save replaces an existing task", func(t *testing.T) {
		store, _ := newTestRedisStore(t, 60)

		task := a2a.NewTask(a2a.NewAgentTextMessage("hello", "ctx-2", ""))
		require.NoError(t, store.Save(ctx, task))

		task.SetStatus(a2a.TaskStateCompleted, nil)
		require.NoError(t, store.Save(ctx, task))

		got, err := store.ByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, a2a.TaskStateCompleted, got.Status.State)
	})

	t.Run("missing task", func(t *testing.T) {
		store, _ := newTestRedisStore(t, 60)
		_, err := store.ByID(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("task without ID rejected", func(t *testing.T) {
		store, _ := newTestRedisStore(t, 60)
		assert.Error(t, store.Save(ctx, &a2a.Task{}))
	})

	t.Run("expired task reads as not found", func(t *testing.T) {
		store, mr := newTestRedisStore(t, 30)

		task := a2a.NewTask(a2a.NewAgentTextMessage("hello", "ctx-3", ""))
		require.NoError(t, store.Save(ctx, task))

		mr.FastForward(31 * time.Second)

		_, err := store.ByID(ctx, task.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
