package i

import (
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/domain"
)

// SolveRecorder persists solve records for post-benchmark inspection.
type SolveRecorder interface {
	// Save inserts a solve record.
	Save(record *domain.SolveRecord) error
}
