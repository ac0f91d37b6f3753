package i

import (
	"context"

	"github.com/EnspikondPlus/neophytic-rooms-purple-base/a2a"
)

// AgentExecutor handles one incoming A2A message and produces the resulting
// task.
type AgentExecutor interface {
	Execute(ctx context.Context, msg *a2a.Message) (*a2a.Task, error)

	// ExecuteStream handles the message like Execute and invokes emit with a
	// task snapshot at each intermediate status transition.
	ExecuteStream(ctx context.Context, msg *a2a.Message, emit func(*a2a.Task)) (*a2a.Task, error)
}
