package csp

import "sort"

// Variable and value ordering. The search asks for the next variable via
// MRV (fewest remaining values), breaking ties by the degree heuristic
// (most arcs to unassigned placements) and finally by row-major anchor
// order so runs are deterministic. Values are ordered by LCV: the value
// that eliminates the fewest options from other unassigned domains first.

// selectVariable picks the next placement to assign.
// Must not be called when every placement is assigned.
func (s *Solver) selectVariable() int {
	best := -1
	bestCount := NumValues + 1
	bestDegree := -1
	for x := 0; x < s.p.NumPlacements(); x++ {
		if s.isAssigned[x] {
			continue
		}
		count := s.domains[x].Count()
		if count > bestCount {
			continue
		}
		if count == bestCount {
			if d := s.degree(x); d <= bestDegree {
				continue
			} else {
				bestDegree = d
			}
		} else {
			bestDegree = s.degree(x)
		}
		best = x
		bestCount = count
	}
	return best
}

// degree counts the arcs from x that still touch unassigned placements.
// With the counting constraints decomposed over every pair, this is the
// number of other unassigned variables; it discriminates only when some
// variables have been assigned, which is exactly when ties need breaking.
func (s *Solver) degree(x int) int {
	d := 0
	for z := 0; z < s.p.NumPlacements(); z++ {
		if z != x && !s.isAssigned[z] {
			d++
		}
	}
	return d
}

// orderValues returns x's remaining values in LCV order: ascending by the
// number of (placement, value) options the choice would rule out elsewhere.
// The sort is stable over the ascending value alphabet, so equal scores
// keep a deterministic order.
func (s *Solver) orderValues(x int) []Value {
	values := s.domains[x].Values()
	if len(values) < 2 {
		return values
	}
	type scored struct {
		v     Value
		score int
	}
	ranked := make([]scored, len(values))
	for i, v := range values {
		ranked[i] = scored{v: v, score: s.eliminations(x, v)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score < ranked[j].score })
	for i, r := range ranked {
		values[i] = r.v
	}
	return values
}

// eliminations counts how many values in other unassigned domains become
// infeasible when x takes v.
func (s *Solver) eliminations(x int, v Value) int {
	n := 0
	for y := 0; y < s.p.NumPlacements(); y++ {
		if y == x || s.isAssigned[y] {
			continue
		}
		for _, w := range s.domains[y].Values() {
			if !s.pairFeasible(x, v, y, w) {
				n++
			}
		}
	}
	return n
}
