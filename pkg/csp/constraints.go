package csp

// The constraint set couples every placement through two shared resources:
// the per-shape tile inventory (an upper bound, checked incrementally) and
// the per-color visibility targets (an exact count, verified at completion
// and bounded during partial assignment). Both are n-ary constraints; for
// AC-3 they are decomposed into binary arcs between every pair of
// placements, with the remaining variables summarized by the running
// min/max achievable visibility per color.

// unaryFeasible reports whether the unassigned placement x can still take v
// given the current counters: the shape must have inventory left, and for
// every target color the achievable visibility interval (assigned visible +
// x's contribution + min/max of all other unassigned placements) must still
// contain the target.
func (s *Solver) unaryFeasible(x int, v Value) bool {
	if shape, ok := v.Shape(); ok && s.used[shape]+1 > s.p.Inventory().Count(shape) {
		return false
	}
	for _, c := range s.targetColors {
		want := s.p.targets[c]
		contrib := s.p.Contribution(x, v, c)
		lo := s.visible[c] + contrib + s.sumMin[c] - s.varMin[x][c]
		hi := s.visible[c] + contrib + s.sumMax[c] - s.varMax[x][c]
		if lo > want || hi < want {
			return false
		}
	}
	return true
}

// pairFeasible reports whether the unassigned placements x and y can
// simultaneously take vx and vy. This is the binary decomposition of the
// shared inventory and visibility constraints: the pair must fit within the
// remaining inventory, and the visibility interval with both contributions
// pinned must still contain every target.
func (s *Solver) pairFeasible(x int, vx Value, y int, vy Value) bool {
	inv := s.p.Inventory()
	sx, okx := vx.Shape()
	sy, oky := vy.Shape()
	switch {
	case okx && oky && sx == sy:
		if s.used[sx]+2 > inv.Count(sx) {
			return false
		}
	default:
		if okx && s.used[sx]+1 > inv.Count(sx) {
			return false
		}
		if oky && s.used[sy]+1 > inv.Count(sy) {
			return false
		}
	}

	for _, c := range s.targetColors {
		want := s.p.targets[c]
		cx := s.p.Contribution(x, vx, c)
		cy := s.p.Contribution(y, vy, c)
		lo := s.visible[c] + cx + cy + s.sumMin[c] - s.varMin[x][c] - s.varMin[y][c]
		hi := s.visible[c] + cx + cy + s.sumMax[c] - s.varMax[x][c] - s.varMax[y][c]
		if lo > want || hi < want {
			return false
		}
	}
	return true
}

// complete verifies a full assignment exactly: every target color's visible
// count equals its target and no shape exceeds its inventory. The bound
// propagation makes violations here rare, but the contract is exact
// verification at completion, not an approximation.
func (s *Solver) complete() bool {
	if s.unassigned != 0 {
		return false
	}
	for _, c := range s.targetColors {
		if s.visible[c] != s.p.targets[c] {
			return false
		}
	}
	inv := s.p.Inventory()
	for shape := TileShape(0); shape < NumShapes; shape++ {
		if s.used[shape] > inv.Count(shape) {
			return false
		}
	}
	return true
}
