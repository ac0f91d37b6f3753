package taskstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/EnspikondPlus/neophytic-rooms-purple-base/a2a"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTaskPrefix = "purple"

	// task key string format
	taskKeyFmt = "%s:task:%s"
)

// Redis stores tasks as JSON documents with a TTL. A redsync mutex guards
// each task's write path so two requests settling the same task cannot
// interleave their status updates.
type Redis struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	ttl    time.Duration
}

// NewRedis initializes a Redis task store with the provided client and TTL.
func NewRedis(client *redis.Client, ttlSeconds int) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis task store requires a client")
	}

	store := &Redis{
		client: client,
		prefix: defaultTaskPrefix,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	store.locker = redsync.New(pool)
	return store, nil
}

// Save inserts or replaces a task under its key, refreshing the TTL.
func (r *Redis) Save(ctx context.Context, task *a2a.Task) error {
	if task == nil || task.ID == "" {
		return errors.New("task must have an ID")
	}

	mutex := r.locker.NewMutex(r.taskKey(task.ID) + ":write_lock")
	if err := mutex.Lock(); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	raw, err := json.Marshal(task)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.taskKey(task.ID), raw, r.ttl).Err()
}

// ByID retrieves a task by its ID.
func (r *Redis) ByID(ctx context.Context, id string) (*a2a.Task, error) {
	raw, err := r.client.Get(ctx, r.taskKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var task a2a.Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *Redis) taskKey(id string) string {
	return fmt.Sprintf(taskKeyFmt, r.prefix, id)
}
