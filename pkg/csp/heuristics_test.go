package csp

import "testing"

func TestSelectVariablePrefersSmallestDomain(t *testing.T) {
	l := mustLandscape(t,
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
	)
	p := mustProblem(t, l, Inventory{Full: 4, OuterBoundary: 4, EL: 4}, nil)
	s := NewSolver(p, Options{})

	// All domains equal: ties break to the lowest row-major index.
	if got := s.selectVariable(); got != 0 {
		t.Errorf("selectVariable() = %d with equal domains, want 0", got)
	}

	// Shrink placement 2's domain below the others.
	s.removeValue(2, FullBlock)
	s.removeValue(2, OuterBoundary)
	if got := s.selectVariable(); got != 2 {
		t.Errorf("selectVariable() = %d, want 2 (smallest domain)", got)
	}

	// An equally small earlier domain wins the tie.
	s.removeValue(1, FullBlock)
	s.removeValue(1, OuterBoundary)
	if got := s.selectVariable(); got != 1 {
		t.Errorf("selectVariable() = %d, want 1 (tie broken row-major)", got)
	}
}

func TestSelectVariableSkipsAssigned(t *testing.T) {
	l := mustLandscape(t,
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
	)
	p := mustProblem(t, l, Inventory{}, nil)
	s := NewSolver(p, Options{})

	s.assign(0, NoTile)
	if got := s.selectVariable(); got != 1 {
		t.Errorf("selectVariable() = %d after assigning 0, want 1", got)
	}
}

func TestOrderValuesDeterministic(t *testing.T) {
	s := NewSolver(concentratedProblem(t), Options{})

	a := s.orderValues(0)
	b := s.orderValues(0)
	if len(a) != len(b) {
		t.Fatalf("orderValues returned differing lengths: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("orderValues not deterministic: %v vs %v", a, b)
		}
	}
}

func TestOrderValuesCoversDomain(t *testing.T) {
	s := NewSolver(concentratedProblem(t), Options{})

	values := s.orderValues(0)
	domain := s.domains[0]
	if len(values) != domain.Count() {
		t.Fatalf("orderValues returned %d values, domain has %d", len(values), domain.Count())
	}
	seen := make(map[Value]bool, len(values))
	for _, v := range values {
		if !domain.Has(v) {
			t.Errorf("orderValues returned %s, not in domain", v)
		}
		if seen[v] {
			t.Errorf("orderValues returned %s twice", v)
		}
		seen[v] = true
	}
}
