package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tilegarden/tilegarden/pkg/csp"
	"github.com/tilegarden/tilegarden/pkg/landscape"
)

// Grid renders the symbolic placement grid: one letter per footprint,
// row-major, columns separated by a space.
func Grid(p *csp.Problem, sol *csp.Solution) string {
	var sb strings.Builder
	for r := 0; r < p.GridHeight(); r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < p.GridWidth(); c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(sol.At(r, c, p.GridWidth()).Symbol())
		}
	}
	return sb.String()
}

// Visual renders the landscape with tiles drawn over it, one character per
// cell: '█' for a covered cell, the color digit for a visible bush, '·' for
// an uncovered empty cell. Footprints are separated by a space.
func Visual(p *csp.Problem, sol *csp.Solution) string {
	land := p.Landscape()
	var sb strings.Builder
	for row := 0; row < land.Height(); row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < land.Width(); col++ {
			if col > 0 && col%csp.TileSize == 0 {
				sb.WriteByte(' ')
			}
			v := sol.At(row/csp.TileSize, col/csp.TileSize, p.GridWidth())
			switch {
			case v.Covers(row%csp.TileSize, col%csp.TileSize):
				sb.WriteRune('█')
			case land.At(row, col) != landscape.None:
				sb.WriteByte(byte('0' + land.At(row, col)))
			default:
				sb.WriteRune('·')
			}
		}
	}
	return sb.String()
}

// Usage renders the per-shape tile consumption against the inventory.
func Usage(p *csp.Problem, sol *csp.Solution) string {
	inv := p.Inventory()
	return fmt.Sprintf("Full Block: %d/%d used\nOuter Boundary: %d/%d used\nEl Shape: %d/%d used",
		sol.Used.Full, inv.Full,
		sol.Used.OuterBoundary, inv.OuterBoundary,
		sol.Used.EL, inv.EL)
}

// Visibility renders the per-color visible bush counts, marking targeted
// colors with their target.
func Visibility(p *csp.Problem, sol *csp.Solution) string {
	targets := p.Targets()
	colors := make([]landscape.Color, 0, len(sol.Visible))
	for c := range sol.Visible {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })

	lines := make([]string, 0, len(colors))
	for _, c := range colors {
		line := fmt.Sprintf("color %d: %d visible", c, sol.Visible[c])
		if want, ok := targets[c]; ok {
			line += fmt.Sprintf(" (target %d)", want)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Text renders the full plain-text report for a solve result. For runs
// without a solution the report is just the outcome and statistics.
func Text(p *csp.Problem, res csp.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Outcome: %s\n", res.Outcome)
	fmt.Fprintf(&sb, "Nodes: %d, backtracks: %d, prunings: %d (%s)\n",
		res.Stats.Nodes, res.Stats.Backtracks, res.Stats.Prunings, res.Stats.Duration)

	if res.Solution == nil {
		return sb.String()
	}

	sb.WriteString("\nF = Full Block, O = Outer Boundary, L = El Shape\n\n")
	sb.WriteString(Visual(p, res.Solution))
	sb.WriteString("\n\n")
	sb.WriteString(Grid(p, res.Solution))
	sb.WriteString("\n\nTile Usage:\n")
	sb.WriteString(Usage(p, res.Solution))
	sb.WriteString("\n\nVisibility:\n")
	sb.WriteString(Visibility(p, res.Solution))
	sb.WriteString("\n")
	return sb.String()
}
