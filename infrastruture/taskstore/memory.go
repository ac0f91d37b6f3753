// Package taskstore provides task persistence backends for the A2A surface:
// a process-local in-memory store and a Redis-backed store for deployments
// where tasks must outlive the process.
package taskstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/EnspikondPlus/neophytic-rooms-purple-base/a2a"
)

// ErrNotFound is returned when no task exists under the requested ID.
var ErrNotFound = errors.New("task not found")

// Memory is a mutex-guarded in-process task store.
type Memory struct {
	mu    sync.RWMutex
	tasks map[string]*a2a.Task
}

// NewMemory creates an empty in-memory task store.
func NewMemory() *Memory {
	return &Memory{
		tasks: make(map[string]*a2a.Task),
	}
}

// Save inserts or replaces a task. The store keeps its own copy so later
// mutations of the caller's task do not leak into concurrent readers.
func (m *Memory) Save(_ context.Context, task *a2a.Task) error {
	if task == nil || task.ID == "" {
		return errors.New("task must have an ID")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.ID] = task.Clone()
	return nil
}

// ByID retrieves a copy of the task stored under the ID.
func (m *Memory) ByID(_ context.Context, id string) (*a2a.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return task.Clone(), nil
}
