package csp

import "testing"

func domainsEqual(a, b []Domain) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPropagateAllPrunesUnsupportedValues(t *testing.T) {
	// Four inner bushes and two border bushes, all color 1, one footprint.
	// With a target of 4 the only values whose visible count equals the
	// target are the ones covering exactly the two border bushes.
	l := mustLandscape(t,
		"1100",
		"0110",
		"0110",
		"0000",
	)
	p := mustProblem(t, l, Inventory{Full: 1, OuterBoundary: 1, EL: 1}, Targets{1: 4})
	s := NewSolver(p, Options{})

	if !s.propagateAll() {
		t.Fatal("propagateAll reported a contradiction on a satisfiable instance")
	}

	got := s.domains[0].Values()
	want := []Value{OuterBoundary, ELTopLeft, ELTopRight}
	if len(got) != len(want) {
		t.Fatalf("domain after propagation = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("domain after propagation = %v, want %v", got, want)
		}
	}
}

func TestPropagateAllIsIdempotent(t *testing.T) {
	s := NewSolver(concentratedProblem(t), Options{})

	if !s.propagateAll() {
		t.Fatal("first propagation reported a contradiction")
	}
	first := s.Domains()

	if !s.propagateAll() {
		t.Fatal("second propagation reported a contradiction")
	}
	second := s.Domains()

	if !domainsEqual(first, second) {
		t.Errorf("second propagation changed domains: %v -> %v", first, second)
	}
}

func TestPropagateAllFixpointAcrossInstances(t *testing.T) {
	// The bound checks read the global min/max aggregates, so a prune at one
	// variable can tighten variables no arc was queued for. The fixpoint must
	// hold anyway: a second full pass changes nothing, and no surviving value
	// fails its own bound check.
	tests := []struct {
		name    string
		rows    []string
		inv     Inventory
		targets Targets
	}{
		{
			name:    "single footprint",
			rows:    []string{"1001", "0110", "0110", "0000"},
			inv:     Inventory{OuterBoundary: 1},
			targets: Targets{1: 4},
		},
		{
			name: "forced full cover",
			rows: []string{
				"00000000", "01000100", "00000000", "00000000",
				"00000000", "01000100", "00000000", "00000000",
			},
			inv:     Inventory{Full: 4, OuterBoundary: 1, EL: 1},
			targets: Targets{1: 0},
		},
		{
			name: "inventory shortfall",
			rows: []string{
				"00000000", "01000100", "00000000", "00000000",
				"00000000", "01000100", "00000000", "00000000",
			},
			inv:     Inventory{Full: 3},
			targets: Targets{1: 0},
		},
		{
			name: "mixed colors",
			rows: []string{
				"00001000", "01000200", "00100020", "00000000",
				"01000000", "00030300", "00200030", "00000004",
			},
			inv:     Inventory{Full: 1, OuterBoundary: 1, EL: 2},
			targets: Targets{1: 0, 2: 3, 3: 3, 4: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := mustLandscape(t, tt.rows...)
			p := mustProblem(t, l, tt.inv, tt.targets)
			s := NewSolver(p, Options{})

			if !s.propagateAll() {
				t.Fatal("propagateAll reported an unexpected pre-search contradiction")
			}
			first := s.Domains()

			for x := 0; x < p.NumPlacements(); x++ {
				for _, v := range s.domains[x].Values() {
					if !s.unaryFeasible(x, v) {
						t.Errorf("placement %d kept %s past the fixpoint", x, v)
					}
				}
			}

			if !s.propagateAll() {
				t.Fatal("second propagation reported a contradiction")
			}
			if !domainsEqual(first, s.Domains()) {
				t.Errorf("second propagation changed domains: %v -> %v", first, s.Domains())
			}
		})
	}
}

func TestPropagateAllDetectsWipeout(t *testing.T) {
	// Three inner bushes: NoTile leaves 3 visible, a full block leaves 0,
	// and no other tile is in inventory. A target of 2 is unreachable.
	l := mustLandscape(t,
		"0000",
		"0110",
		"0100",
		"0000",
	)
	p := mustProblem(t, l, Inventory{Full: 1}, Targets{1: 2})
	s := NewSolver(p, Options{})

	if s.propagateAll() {
		t.Fatal("propagateAll should report a contradiction when every value is unsupported")
	}
	if !s.domains[0].Empty() {
		t.Errorf("domain = %v after wipeout, want empty", s.domains[0].Values())
	}
}

func TestPropagationIsTrailed(t *testing.T) {
	s := NewSolver(concentratedProblem(t), Options{})
	before := captureState(s)

	if !s.propagateAll() {
		t.Fatal("propagateAll reported a contradiction")
	}
	s.undoTo(0)

	if !before.equal(captureState(s)) {
		t.Error("unwinding preprocessing prunes did not restore the initial state")
	}
}
