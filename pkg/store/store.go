// Package store persists solve runs: the outcome, search statistics, and
// solution of each solve, keyed by a run ID. The API server records every
// run so results can be fetched later; the CLI does not use the store.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no run exists with the requested ID.
var ErrNotFound = errors.New("run not found")

// Run is one recorded solve.
type Run struct {
	ID          uuid.UUID       `json:"id" bson:"_id"`
	CreatedAt   time.Time       `json:"created_at" bson:"created_at"`
	ProblemHash string          `json:"problem_hash" bson:"problem_hash"`
	Outcome     string          `json:"outcome" bson:"outcome"`
	Nodes       int64           `json:"nodes" bson:"nodes"`
	Backtracks  int64           `json:"backtracks" bson:"backtracks"`
	Prunings    int64           `json:"prunings" bson:"prunings"`
	Duration    time.Duration   `json:"duration_ns" bson:"duration_ns"`
	Solution    *StoredSolution `json:"solution,omitempty" bson:"solution,omitempty"`
}

// StoredSolution is the persisted form of a solution: values by placement
// index plus the grid shape needed to interpret them.
type StoredSolution struct {
	GridHeight int            `json:"grid_height" bson:"grid_height"`
	GridWidth  int            `json:"grid_width" bson:"grid_width"`
	Values     []uint8        `json:"values" bson:"values"`
	Visible    map[string]int `json:"visible" bson:"visible"`
}

// Store records and retrieves solve runs.
type Store interface {
	// Put records a run. Writing an ID that already exists overwrites the
	// previous record.
	Put(ctx context.Context, run Run) error

	// Get retrieves a run by ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, id uuid.UUID) (Run, error)

	// List returns the most recent runs, newest first, up to limit.
	List(ctx context.Context, limit int) ([]Run, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
