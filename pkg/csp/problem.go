// Package csp implements the constraint-satisfaction engine for tile
// placement: variables are 4x4-aligned footprints, domains are tile choices,
// and the constraints couple every placement through shared tile inventory
// and exact per-color visibility targets.
//
// The engine follows the classical CSP recipe: arc consistency (AC-3) prunes
// domains before and during search, and a backtracking search guided by the
// MRV, degree, and LCV heuristics finds the first complete assignment that
// satisfies every constraint, or proves that none exists.
//
// # Usage
//
//	p, err := csp.NewProblem(land, inv, targets)
//	if err != nil {
//	    return err // malformed problem, never enters search
//	}
//	res := csp.NewSolver(p, csp.Options{}).Solve(ctx)
//	switch res.Outcome {
//	case csp.OutcomeSolved:
//	    use(res.Solution)
//	case csp.OutcomeExhausted:
//	    // proven unsatisfiable
//	case csp.OutcomeAborted:
//	    // budget or context expired before an answer
//	}
package csp

import (
	"errors"

	"github.com/tilegarden/tilegarden/pkg/landscape"
)

var (
	// ErrGridDimensions is returned by [NewProblem] when either landscape
	// dimension is not a multiple of [TileSize]. Footprints must partition
	// the grid exactly.
	ErrGridDimensions = errors.New("landscape dimensions must be multiples of the tile size")

	// ErrNegativeInventory is returned by [NewProblem] when any tile count
	// is negative.
	ErrNegativeInventory = errors.New("inventory counts must not be negative")

	// ErrInvalidTargetColor is returned by [NewProblem] when a visibility
	// target names a color outside 1..landscape.MaxColor.
	ErrInvalidTargetColor = errors.New("visibility target names an invalid color")

	// ErrImpossibleTarget is returned by [NewProblem] when a visibility
	// target is negative or exceeds the number of bushes of that color.
	// This is the static bound check: such instances are rejected before
	// search ever starts.
	ErrImpossibleTarget = errors.New("visibility target outside the achievable range")
)

// Placement identifies one variable of the problem: a TileSize-aligned
// footprint addressed by its anchor in footprint units. The placement at
// (Row, Col) covers landscape cells [Row*TileSize, Row*TileSize+TileSize) x
// [Col*TileSize, Col*TileSize+TileSize).
type Placement struct {
	Index int // row-major index, 0..NumPlacements-1
	Row   int // anchor row in footprint units
	Col   int // anchor column in footprint units
}

// Problem is an immutable tile placement instance: the landscape, the tile
// inventory, and the per-color visibility targets. It also carries the
// precomputed per-placement visibility contribution tables the solver and
// the propagator consult on every consistency check.
//
// Construct with [NewProblem]; a non-nil Problem has passed all static
// validation and is safe to hand to any number of solvers.
type Problem struct {
	land    *landscape.Landscape
	inv     Inventory
	targets Targets

	gridH      int // footprint rows
	gridW      int // footprint columns
	placements []Placement

	// contrib[p][v][c] is the number of color-c bushes left visible in
	// placement p when it is assigned value v.
	contrib [][NumValues][landscape.MaxColor + 1]uint8

	bushTotals [landscape.MaxColor + 1]int
}

// NewProblem validates the inputs and builds a problem instance.
//
// Validation failures are configuration errors in the sense of the engine's
// error taxonomy: they are fatal, reported immediately, and the search is
// never entered. The checks are:
//
//   - both landscape dimensions are multiples of TileSize (ErrGridDimensions)
//   - all inventory counts are non-negative (ErrNegativeInventory)
//   - every target color is a valid bush color (ErrInvalidTargetColor)
//   - every target count is within [0, bushes of that color]
//     (ErrImpossibleTarget)
func NewProblem(land *landscape.Landscape, inv Inventory, targets Targets) (*Problem, error) {
	if land.Height()%TileSize != 0 || land.Width()%TileSize != 0 {
		return nil, ErrGridDimensions
	}
	if inv.Full < 0 || inv.OuterBoundary < 0 || inv.EL < 0 {
		return nil, ErrNegativeInventory
	}

	p := &Problem{
		land:    land,
		inv:     inv,
		targets: make(Targets, len(targets)),
		gridH:   land.Height() / TileSize,
		gridW:   land.Width() / TileSize,
	}
	for c := landscape.Color(1); c <= landscape.MaxColor; c++ {
		p.bushTotals[c] = land.BushCount(c)
	}
	for c, want := range targets {
		if c == landscape.None || !c.Valid() {
			return nil, ErrInvalidTargetColor
		}
		if want < 0 || want > p.bushTotals[c] {
			return nil, ErrImpossibleTarget
		}
		p.targets[c] = want
	}

	n := p.gridH * p.gridW
	p.placements = make([]Placement, n)
	p.contrib = make([][NumValues][landscape.MaxColor + 1]uint8, n)
	for i := range p.placements {
		p.placements[i] = Placement{Index: i, Row: i / p.gridW, Col: i % p.gridW}
		p.contrib[i] = p.contributionTable(p.placements[i])
	}
	return p, nil
}

// contributionTable computes, for one placement, the visible bush count per
// color under every possible value. A bush is visible when its cell is not
// covered by the placed tile.
func (p *Problem) contributionTable(pl Placement) [NumValues][landscape.MaxColor + 1]uint8 {
	var table [NumValues][landscape.MaxColor + 1]uint8
	baseR, baseC := pl.Row*TileSize, pl.Col*TileSize
	for r := 0; r < TileSize; r++ {
		for c := 0; c < TileSize; c++ {
			color := p.land.At(baseR+r, baseC+c)
			if color == landscape.None {
				continue
			}
			for v := Value(0); v < NumValues; v++ {
				if !v.Covers(r, c) {
					table[v][color]++
				}
			}
		}
	}
	return table
}

// Landscape returns the underlying landscape.
func (p *Problem) Landscape() *landscape.Landscape { return p.land }

// Inventory returns the tile inventory.
func (p *Problem) Inventory() Inventory { return p.inv }

// Targets returns a copy of the visibility targets.
func (p *Problem) Targets() Targets {
	out := make(Targets, len(p.targets))
	for c, n := range p.targets {
		out[c] = n
	}
	return out
}

// GridHeight returns the number of footprint rows.
func (p *Problem) GridHeight() int { return p.gridH }

// GridWidth returns the number of footprint columns.
func (p *Problem) GridWidth() int { return p.gridW }

// NumPlacements returns the number of placement variables.
func (p *Problem) NumPlacements() int { return len(p.placements) }

// PlacementAt returns the placement with the given row-major index.
func (p *Problem) PlacementAt(i int) Placement { return p.placements[i] }

// Contribution returns the number of color-c bushes left visible in
// placement i when it takes value v.
func (p *Problem) Contribution(i int, v Value, c landscape.Color) int {
	return int(p.contrib[i][v][c])
}

// BushTotal returns the total number of bushes of color c in the landscape.
func (p *Problem) BushTotal(c landscape.Color) int { return p.bushTotals[c] }
