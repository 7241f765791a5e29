package csp

import (
	"testing"

	"github.com/tilegarden/tilegarden/pkg/landscape"
)

// solverState captures every piece of mutable solver state so tests can
// verify that backtracking restores it exactly.
type solverState struct {
	domains    []Domain
	assigned   []Value
	isAssigned []bool
	unassigned int
	used       [NumShapes]int
	visible    [landscape.MaxColor + 1]int
	varMin     [][landscape.MaxColor + 1]int
	varMax     [][landscape.MaxColor + 1]int
	sumMin     [landscape.MaxColor + 1]int
	sumMax     [landscape.MaxColor + 1]int
}

func captureState(s *Solver) solverState {
	st := solverState{
		domains:    append([]Domain(nil), s.domains...),
		assigned:   append([]Value(nil), s.assigned...),
		isAssigned: append([]bool(nil), s.isAssigned...),
		unassigned: s.unassigned,
		used:       s.used,
		visible:    s.visible,
		varMin:     append([][landscape.MaxColor + 1]int(nil), s.varMin...),
		varMax:     append([][landscape.MaxColor + 1]int(nil), s.varMax...),
		sumMin:     s.sumMin,
		sumMax:     s.sumMax,
	}
	return st
}

func (st solverState) equal(other solverState) bool {
	if st.unassigned != other.unassigned ||
		st.used != other.used ||
		st.visible != other.visible ||
		st.sumMin != other.sumMin ||
		st.sumMax != other.sumMax {
		return false
	}
	for i := range st.domains {
		if st.domains[i] != other.domains[i] ||
			st.isAssigned[i] != other.isAssigned[i] ||
			st.varMin[i] != other.varMin[i] ||
			st.varMax[i] != other.varMax[i] {
			return false
		}
		// assigned[i] is only meaningful while isAssigned[i] holds.
		if st.isAssigned[i] && st.assigned[i] != other.assigned[i] {
			return false
		}
	}
	return true
}

// concentratedProblem is an 8x8 landscape with sixteen color-1 bushes filling
// the top-left footprint and an inventory of one of each shape family.
func concentratedProblem(t *testing.T) *Problem {
	t.Helper()
	l := mustLandscape(t,
		"11110000",
		"11110000",
		"11110000",
		"11110000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
	)
	return mustProblem(t, l, Inventory{Full: 1, OuterBoundary: 1, EL: 2}, Targets{1: 4})
}

func TestUndoRestoresExactState(t *testing.T) {
	s := NewSolver(concentratedProblem(t), Options{})

	before := captureState(s)
	mark := len(s.trail)

	s.assign(0, OuterBoundary)
	s.propagateFrom(0)

	after := captureState(s)
	if before.equal(after) {
		t.Fatal("assign + propagate did not change solver state")
	}

	s.undoTo(mark)
	restored := captureState(s)
	if !before.equal(restored) {
		t.Fatal("undoTo did not restore the exact prior state")
	}
	if len(s.trail) != mark {
		t.Fatalf("trail length = %d after undo, want %d", len(s.trail), mark)
	}
}

func TestUndoRestoresAcrossNestedMarks(t *testing.T) {
	s := NewSolver(concentratedProblem(t), Options{})

	state0 := captureState(s)
	mark0 := len(s.trail)

	s.assign(0, OuterBoundary)
	s.propagateFrom(0)
	state1 := captureState(s)
	mark1 := len(s.trail)

	s.assign(1, NoTile)
	s.propagateFrom(1)

	s.undoTo(mark1)
	if !state1.equal(captureState(s)) {
		t.Fatal("inner undo did not restore the mid-search state")
	}

	s.undoTo(mark0)
	if !state0.equal(captureState(s)) {
		t.Fatal("outer undo did not restore the initial state")
	}
}

func TestRemoveValueUpdatesBounds(t *testing.T) {
	s := NewSolver(concentratedProblem(t), Options{})

	// Placement 0 holds all sixteen bushes; removing NoTile drops its
	// maximum contribution from 16 to the next-best value.
	maxBefore := s.varMax[0][1]
	if maxBefore != 16 {
		t.Fatalf("varMax[0][1] = %d, want 16", maxBefore)
	}

	s.removeValue(0, NoTile)
	if s.varMax[0][1] != 9 {
		t.Errorf("varMax[0][1] = %d after removing NoTile, want 9 (EL leaves a 3x3 corner)", s.varMax[0][1])
	}
	if s.domains[0].Has(NoTile) {
		t.Error("NoTile still present after removal")
	}
}
