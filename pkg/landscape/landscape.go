// Package landscape defines the immutable bush landscape that tile
// placement problems are solved against.
//
// A landscape is a rectangular grid of cells. Each cell either holds a bush
// of one of four colors or is empty. Landscapes are constructed once from
// parsed input and never change for the lifetime of a solve; everything
// downstream (domains, assignments, visibility counts) is derived state.
package landscape

import "errors"

var (
	// ErrEmptyGrid is returned by [New] when the grid has no rows or no columns.
	ErrEmptyGrid = errors.New("landscape grid must not be empty")

	// ErrRaggedGrid is returned by [New] when rows have differing lengths.
	// The landscape must be rectangular.
	ErrRaggedGrid = errors.New("landscape rows must all have the same length")

	// ErrInvalidColor is returned by [New] when a cell holds a color outside
	// the range [None, MaxColor].
	ErrInvalidColor = errors.New("cell color out of range")
)

// Color identifies a bush color. The zero value None marks an empty cell.
type Color uint8

// None marks a cell with no bush.
const None Color = 0

// MaxColor is the highest valid bush color. Colors are numbered 1..MaxColor.
const MaxColor Color = 4

// Valid reports whether c is None or a numbered bush color.
func (c Color) Valid() bool { return c <= MaxColor }

// Landscape is an immutable rectangular grid of bush colors.
// The zero value is not usable - use [New] to construct one.
type Landscape struct {
	height int
	width  int
	cells  []Color // row-major, len == height*width
}

// New builds a landscape from a row-major grid of colors.
// The grid is copied, so the caller may reuse the input slices.
// Returns ErrEmptyGrid, ErrRaggedGrid, or ErrInvalidColor on malformed input.
func New(grid [][]Color) (*Landscape, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	width := len(grid[0])
	cells := make([]Color, 0, len(grid)*width)
	for _, row := range grid {
		if len(row) != width {
			return nil, ErrRaggedGrid
		}
		for _, c := range row {
			if !c.Valid() {
				return nil, ErrInvalidColor
			}
			cells = append(cells, c)
		}
	}
	return &Landscape{height: len(grid), width: width, cells: cells}, nil
}

// Height returns the number of rows.
func (l *Landscape) Height() int { return l.height }

// Width returns the number of columns.
func (l *Landscape) Width() int { return l.width }

// At returns the color of the cell at (row, col).
// Out-of-range coordinates return None.
func (l *Landscape) At(row, col int) Color {
	if row < 0 || row >= l.height || col < 0 || col >= l.width {
		return None
	}
	return l.cells[row*l.width+col]
}

// BushCount returns the number of bushes of the given color.
// BushCount(None) counts empty cells.
func (l *Landscape) BushCount(c Color) int {
	n := 0
	for _, cell := range l.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Colors returns the bush colors present in the landscape, ascending.
// Empty cells are not reported.
func (l *Landscape) Colors() []Color {
	var present [MaxColor + 1]bool
	for _, cell := range l.cells {
		present[cell] = true
	}
	var out []Color
	for c := Color(1); c <= MaxColor; c++ {
		if present[c] {
			out = append(out, c)
		}
	}
	return out
}
