// Package domain holds the persisted value types of the purple agent.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// SolveRecord captures one answered request for post-benchmark inspection:
// which conversation it belonged to, what the agent replied, and how the task
// ended.
type SolveRecord struct {
	ID        uuid.UUID `bson:"_id"`
	ContextID string    `bson:"contextId"`
	TaskID    string    `bson:"taskId"`
	State     string    `bson:"state"`
	Response  string    `bson:"response"`
	ElapsedMS int64     `bson:"elapsedMs"`
	CreatedAt time.Time `bson:"createdAt"`
}
