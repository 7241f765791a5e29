package csp

// AC-3 over the binary decomposition of the shared-resource constraints.
// An arc (x, y) is directed: revising it removes values from x's domain
// that have no support in y's. Because every pair of placements shares the
// global inventory and visibility resources, the arc set is the complete
// directed graph over placements.
//
// Propagation runs once over the full problem before search starts (a node
// consistency sweep first, then the arc worklist), and incrementally after
// every assignment, seeded with the arcs pointing at the just-assigned
// variable. Every pruning lands on the solver's trail, so a contradiction
// (empty domain) unwinds exactly.

// arc is an ordered pair of placement indices coupled by a binary constraint.
type arc struct {
	x, y int
}

// revise removes every value of x that is unsupported against y.
// If y is already assigned its contribution is folded into the running
// counters, so support collapses to the unary check; otherwise a value of x
// survives only if some value of y is jointly feasible with it.
// Returns true if x's domain changed.
func (s *Solver) revise(x, y int) bool {
	changed := false
	for _, v := range s.domains[x].Values() {
		ok := s.unaryFeasible(x, v)
		if ok && !s.isAssigned[y] {
			ok = false
			for _, w := range s.domains[y].Values() {
				if s.pairFeasible(x, v, y, w) {
					ok = true
					break
				}
			}
		}
		if !ok {
			s.removeValue(x, v)
			changed = true
		}
	}
	return changed
}

// propagate runs the AC-3 worklist to a fixpoint starting from seeds.
// Returns false when some domain empties (contradiction); the caller is
// responsible for unwinding the trail. Terminates with every remaining arc
// consistent - which does not imply the instance is solvable, only that no
// value is locally doomed.
func (s *Solver) propagate(seeds []arc) bool {
	queue := seeds
	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		if s.isAssigned[a.x] {
			continue
		}
		if !s.revise(a.x, a.y) {
			continue
		}
		if s.domains[a.x].Empty() {
			return false
		}
		// A change at a.x moves the sumMin/sumMax aggregates, which tightens
		// the bound checks of every other variable, a.y included. Re-enqueue
		// them all, not just the classic AC-3 neighbors.
		for z := 0; z < s.p.NumPlacements(); z++ {
			if z != a.x && !s.isAssigned[z] {
				queue = append(queue, arc{x: z, y: a.x})
			}
		}
	}
	return true
}

// nodeConsistent prunes every value of every unassigned variable that fails
// the unary bound check. With a single placement there are no arcs at all,
// so this sweep is the only source of pre-search pruning; with more it just
// hands the worklist tighter domains.
func (s *Solver) nodeConsistent() bool {
	for x := 0; x < s.p.NumPlacements(); x++ {
		if s.isAssigned[x] {
			continue
		}
		for _, v := range s.domains[x].Values() {
			if !s.unaryFeasible(x, v) {
				s.removeValue(x, v)
			}
		}
		if s.domains[x].Empty() {
			return false
		}
	}
	return true
}

// propagateAll enforces node and arc consistency over the whole problem.
// Run once before search; a false return proves the instance unsatisfiable
// without entering search.
func (s *Solver) propagateAll() bool {
	if !s.nodeConsistent() {
		return false
	}
	n := s.p.NumPlacements()
	seeds := make([]arc, 0, n*(n-1))
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			if x != y {
				seeds = append(seeds, arc{x: x, y: y})
			}
		}
	}
	return s.propagate(seeds)
}

// propagateFrom re-establishes arc consistency after x was assigned,
// revising only the arcs that point at x from unassigned variables. The
// worklist grows from there if their domains change.
func (s *Solver) propagateFrom(x int) bool {
	seeds := make([]arc, 0, s.unassigned)
	for z := 0; z < s.p.NumPlacements(); z++ {
		if z != x && !s.isAssigned[z] {
			seeds = append(seeds, arc{x: z, y: x})
		}
	}
	return s.propagate(seeds)
}
