package csp

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/tilegarden/tilegarden/pkg/landscape"
)

// Options configures a solver run.
type Options struct {
	// Logger receives debug-level progress. Defaults to a discard logger.
	Logger *log.Logger

	// NodeBudget caps the number of assignments the search may try.
	// Zero means unlimited. When the budget is exhausted the search stops
	// with OutcomeAborted rather than OutcomeExhausted.
	NodeBudget int64

	// ProgressEvery, when positive, invokes OnProgress every N nodes.
	ProgressEvery int64

	// OnProgress receives a snapshot of the running statistics. Called on
	// the search goroutine; it must return quickly.
	OnProgress func(Stats)
}

// Solver runs AC-3 propagation and backtracking search over one problem
// instance. A Solver is single-use: create a fresh one per Solve call.
// It is not safe for concurrent use; the search is purely sequential and
// the domain/assignment state is owned by the active search path.
type Solver struct {
	p      *Problem
	opts   Options
	logger *log.Logger

	domains    []Domain
	assigned   []Value
	isAssigned []bool
	unassigned int

	// Incremental running counts over the assigned placements.
	used    [NumShapes]int
	visible [landscape.MaxColor + 1]int

	// Per-variable visibility bounds over the current domain and their
	// aggregates over unassigned variables. Only target colors are
	// maintained; other colors are unconstrained.
	targetColors []landscape.Color
	varMin       [][landscape.MaxColor + 1]int
	varMax       [][landscape.MaxColor + 1]int
	sumMin       [landscape.MaxColor + 1]int
	sumMax       [landscape.MaxColor + 1]int

	trail []trailEntry
	stats Stats
	ran   bool
}

// trailEntry records one reversible mutation. Entries are popped in strict
// LIFO order on backtrack, restoring the exact prior state.
type trailEntry struct {
	kind    trailKind
	x       int
	removed Value // for trailRemove
}

type trailKind uint8

const (
	trailRemove trailKind = iota // a value was removed from domains[x]
	trailAssign                  // x was assigned (its counters were folded in)
)

// NewSolver prepares a solver with initial domains built from the problem.
func NewSolver(p *Problem, opts Options) *Solver {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	n := p.NumPlacements()
	s := &Solver{
		p:          p,
		opts:       opts,
		logger:     logger,
		domains:    InitialDomains(p),
		assigned:   make([]Value, n),
		isAssigned: make([]bool, n),
		unassigned: n,
		varMin:     make([][landscape.MaxColor + 1]int, n),
		varMax:     make([][landscape.MaxColor + 1]int, n),
	}
	for c := range p.Targets() {
		s.targetColors = append(s.targetColors, c)
	}
	sortColors(s.targetColors)

	for x := 0; x < n; x++ {
		s.recomputeBounds(x)
		for _, c := range s.targetColors {
			s.sumMin[c] += s.varMin[x][c]
			s.sumMax[c] += s.varMax[x][c]
		}
	}
	return s
}

// sortColors orders colors ascending for deterministic iteration.
func sortColors(cs []landscape.Color) {
	for i := 1; i < len(cs); i++ {
		for j := i; j > 0 && cs[j] < cs[j-1]; j-- {
			cs[j], cs[j-1] = cs[j-1], cs[j]
		}
	}
}

// recomputeBounds refreshes varMin/varMax of x from its current domain.
// Bounds are a pure function of the domain, so restoring removed values and
// recomputing yields byte-identical state on backtrack.
func (s *Solver) recomputeBounds(x int) {
	d := s.domains[x]
	for _, c := range s.targetColors {
		lo, hi := -1, 0
		for v := Value(0); v < NumValues; v++ {
			if !d.Has(v) {
				continue
			}
			n := s.p.Contribution(x, v, c)
			if lo < 0 || n < lo {
				lo = n
			}
			if n > hi {
				hi = n
			}
		}
		if lo < 0 {
			lo = 0 // empty domain; the contradiction unwinds immediately
		}
		s.varMin[x][c] = lo
		s.varMax[x][c] = hi
	}
}

// removeValue prunes v from domains[x], records it on the trail, and keeps
// the visibility aggregates in sync.
func (s *Solver) removeValue(x int, v Value) {
	s.domains[x] = s.domains[x].remove(v)
	s.trail = append(s.trail, trailEntry{kind: trailRemove, x: x, removed: v})
	s.stats.Prunings++
	if !s.isAssigned[x] {
		s.updateBounds(x)
	}
}

// updateBounds recomputes x's bounds and folds the delta into the sums.
func (s *Solver) updateBounds(x int) {
	for _, c := range s.targetColors {
		s.sumMin[c] -= s.varMin[x][c]
		s.sumMax[c] -= s.varMax[x][c]
	}
	s.recomputeBounds(x)
	for _, c := range s.targetColors {
		s.sumMin[c] += s.varMin[x][c]
		s.sumMax[c] += s.varMax[x][c]
	}
}

// assign binds x to v: the rest of x's domain is pruned (trailed), x's
// contribution moves from the bound aggregates into the running counters,
// and inventory is consumed.
func (s *Solver) assign(x int, v Value) {
	for _, w := range s.domains[x].Values() {
		if w != v {
			s.removeValue(x, w)
		}
	}

	for _, c := range s.targetColors {
		s.sumMin[c] -= s.varMin[x][c]
		s.sumMax[c] -= s.varMax[x][c]
		s.visible[c] += s.p.Contribution(x, v, c)
	}
	if shape, ok := v.Shape(); ok {
		s.used[shape]++
	}
	s.assigned[x] = v
	s.isAssigned[x] = true
	s.unassigned--
	s.trail = append(s.trail, trailEntry{kind: trailAssign, x: x})
}

// undoTo pops trail entries down to mark, restoring domains, assignment,
// counters, and bounds to their exact state at the time of the mark.
func (s *Solver) undoTo(mark int) {
	for len(s.trail) > mark {
		e := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		switch e.kind {
		case trailAssign:
			v := s.assigned[e.x]
			s.isAssigned[e.x] = false
			s.unassigned++
			if shape, ok := v.Shape(); ok {
				s.used[shape]--
			}
			for _, c := range s.targetColors {
				s.visible[c] -= s.p.Contribution(e.x, v, c)
				s.sumMin[c] += s.varMin[e.x][c]
				s.sumMax[c] += s.varMax[e.x][c]
			}
		case trailRemove:
			s.domains[e.x] = s.domains[e.x].add(e.removed)
			if !s.isAssigned[e.x] {
				s.updateBounds(e.x)
			}
		}
	}
}

// Domains returns a copy of the current domain state. Intended for tests
// and debugging tools; the solver's own state cannot be mutated through it.
func (s *Solver) Domains() []Domain {
	out := make([]Domain, len(s.domains))
	copy(out, s.domains)
	return out
}
