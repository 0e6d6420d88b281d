// Package checkpoint persists run state snapshots keyed by thread id so
// interrupted runs can be resumed.
package checkpoint

import (
	"context"
	"errors"
	"time"

	"github.com/jonathan/sales-simulator/internal/state"
)

// ErrNotFound is returned when no checkpoint exists for a thread id.
var ErrNotFound = errors.New("checkpoint not found")

// RunSummary is a lightweight view of a stored run for listing.
type RunSummary struct {
	ThreadID     string    `json:"thread_id"`
	ExecutionID  string    `json:"execution_id"`
	Status       string    `json:"status"`
	CurrentStage string    `json:"current_stage"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Store saves and restores run state snapshots.
type Store interface {
	// Save upserts the latest snapshot for the state's thread id.
	Save(ctx context.Context, st *state.RunState) error
	// Load returns the latest snapshot for the thread id, or ErrNotFound.
	Load(ctx context.Context, threadID string) (*state.RunState, error)
	// List returns recent runs, newest first.
	List(ctx context.Context, limit int) ([]RunSummary, error)
	// Delete removes all snapshots for the thread id, or returns ErrNotFound.
	Delete(ctx context.Context, threadID string) error
}
