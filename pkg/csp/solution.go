package csp

import (
	"time"

	"github.com/tilegarden/tilegarden/pkg/landscape"
)

// Outcome classifies how a solve run ended.
type Outcome uint8

const (
	// OutcomeSolved means a complete, consistent assignment was found.
	OutcomeSolved Outcome = iota
	// OutcomeExhausted means the search space was exhausted with no
	// solution: the instance is proven unsatisfiable.
	OutcomeExhausted
	// OutcomeAborted means the node budget or the context expired before
	// the search reached an answer. Distinct from OutcomeExhausted: an
	// aborted run proves nothing.
	OutcomeAborted
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSolved:
		return "solved"
	case OutcomeExhausted:
		return "no-solution"
	case OutcomeAborted:
		return "aborted"
	}
	return "unknown"
}

// Stats reports search effort.
type Stats struct {
	Nodes      int64         // assignments tried
	Backtracks int64         // decision points exhausted
	Prunings   int64         // domain values removed (and later restored)
	MaxDepth   int           // deepest decision stack
	Duration   time.Duration // wall time of the Solve call
}

// Solution is a complete assignment satisfying every constraint: one value
// per placement, visibility counts matching every target exactly, and tile
// usage within inventory.
type Solution struct {
	// Values holds the chosen value per placement, indexed row-major.
	Values []Value

	// Visible is the per-color count of bushes left visible, for every
	// color present in the landscape (not just target colors).
	Visible map[landscape.Color]int

	// Used is the number of tiles consumed per shape.
	Used Inventory
}

// At returns the value assigned to the placement anchored at footprint
// (row, col) of a problem with the given grid width.
func (sol *Solution) At(row, col, gridWidth int) Value {
	return sol.Values[row*gridWidth+col]
}

// Result is the terminal state of a solve run.
type Result struct {
	Outcome  Outcome
	Solution *Solution // non-nil iff Outcome == OutcomeSolved
	Stats    Stats
}

// buildSolution snapshots the solver's complete assignment.
func (s *Solver) buildSolution() *Solution {
	sol := &Solution{
		Values:  make([]Value, len(s.assigned)),
		Visible: make(map[landscape.Color]int),
	}
	copy(sol.Values, s.assigned)
	sol.Used = Inventory{
		Full:          s.used[ShapeFull],
		OuterBoundary: s.used[ShapeOuterBoundary],
		EL:            s.used[ShapeEL],
	}
	for _, c := range s.p.Landscape().Colors() {
		n := 0
		for x, v := range sol.Values {
			n += s.p.Contribution(x, v, c)
		}
		sol.Visible[c] = n
	}
	return sol
}
