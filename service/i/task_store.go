package i

import (
	"context"

	"github.com/EnspikondPlus/neophytic-rooms-purple-base/a2a"
)

// TaskStore persists A2A tasks across the request/response cycle so the green
// agent can query them by ID.
type TaskStore interface {
	// Save inserts or replaces a task.
	Save(ctx context.Context, task *a2a.Task) error

	// ByID retrieves a task by its ID.
	// Returns an error if the task is not found or in case of an unexpected error.
	ByID(ctx context.Context, id string) (*a2a.Task, error)
}
