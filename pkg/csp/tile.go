package csp

import "github.com/tilegarden/tilegarden/pkg/landscape"

// TileSize is the side length of a tile footprint. Every tile occupies a
// TileSize x TileSize aligned region of the landscape.
const TileSize = 4

// TileShape identifies a physical tile shape, ignoring orientation.
type TileShape uint8

const (
	// ShapeFull covers the entire footprint.
	ShapeFull TileShape = iota
	// ShapeOuterBoundary covers the 12 border cells, leaving the inner
	// 2x2 visible.
	ShapeOuterBoundary
	// ShapeEL covers two adjacent sides of the footprint (7 cells).
	// Which two sides is carried by the orientation of the Value.
	ShapeEL

	// NumShapes is the number of physical tile shapes.
	NumShapes = 3
)

// String returns the shape name used in problem files.
func (s TileShape) String() string {
	switch s {
	case ShapeFull:
		return "FULL_BLOCK"
	case ShapeOuterBoundary:
		return "OUTER_BOUNDARY"
	case ShapeEL:
		return "EL_SHAPE"
	}
	return "UNKNOWN"
}

// Value is a domain value for a placement variable: a concrete tile choice
// (shape plus orientation) or the distinguished NoTile value that leaves the
// footprint untiled.
type Value uint8

const (
	// NoTile leaves the footprint untiled; every bush in it stays visible.
	NoTile Value = iota
	// FullBlock places a ShapeFull tile.
	FullBlock
	// OuterBoundary places a ShapeOuterBoundary tile.
	OuterBoundary
	// ELTopLeft .. ELBottomRight place a ShapeEL tile covering the named
	// pair of adjacent sides.
	ELTopLeft
	ELTopRight
	ELBottomLeft
	ELBottomRight

	// NumValues is the size of the full value alphabet.
	NumValues = 7
)

// String returns a short name for the value.
func (v Value) String() string {
	switch v {
	case NoTile:
		return "none"
	case FullBlock:
		return "full"
	case OuterBoundary:
		return "outer"
	case ELTopLeft:
		return "el-tl"
	case ELTopRight:
		return "el-tr"
	case ELBottomLeft:
		return "el-bl"
	case ELBottomRight:
		return "el-br"
	}
	return "invalid"
}

// Symbol returns the single-letter symbol used in the symbolic solution grid.
func (v Value) Symbol() byte {
	switch v {
	case FullBlock:
		return 'F'
	case OuterBoundary:
		return 'O'
	case ELTopLeft, ELTopRight, ELBottomLeft, ELBottomRight:
		return 'L'
	}
	return '.'
}

// Shape returns the physical shape consumed by the value and true, or
// (0, false) for NoTile, which consumes no inventory.
func (v Value) Shape() (TileShape, bool) {
	switch v {
	case FullBlock:
		return ShapeFull, true
	case OuterBoundary:
		return ShapeOuterBoundary, true
	case ELTopLeft, ELTopRight, ELBottomLeft, ELBottomRight:
		return ShapeEL, true
	}
	return 0, false
}

// coverageMasks holds, per value, a bitmask over the footprint's 16 cells
// (bit row*TileSize+col set means the cell is covered by the tile).
var coverageMasks = buildCoverageMasks()

func buildCoverageMasks() [NumValues]uint16 {
	bit := func(r, c int) uint16 { return 1 << uint(r*TileSize+c) }
	var m [NumValues]uint16

	for r := 0; r < TileSize; r++ {
		for c := 0; c < TileSize; c++ {
			m[FullBlock] |= bit(r, c)
			if r == 0 || r == TileSize-1 || c == 0 || c == TileSize-1 {
				m[OuterBoundary] |= bit(r, c)
			}
			if r == 0 || c == 0 {
				m[ELTopLeft] |= bit(r, c)
			}
			if r == 0 || c == TileSize-1 {
				m[ELTopRight] |= bit(r, c)
			}
			if r == TileSize-1 || c == 0 {
				m[ELBottomLeft] |= bit(r, c)
			}
			if r == TileSize-1 || c == TileSize-1 {
				m[ELBottomRight] |= bit(r, c)
			}
		}
	}
	return m
}

// Covers reports whether the value covers the footprint cell at (row, col),
// both in [0, TileSize).
func (v Value) Covers(row, col int) bool {
	if v >= NumValues {
		return false
	}
	return coverageMasks[v]&(1<<uint(row*TileSize+col)) != 0
}

// Inventory holds the remaining tile counts per shape. Orientation is not
// tracked: every ELShape orientation draws from the same EL count.
type Inventory struct {
	Full          int
	OuterBoundary int
	EL            int
}

// Count returns the inventory for the given shape.
func (i Inventory) Count(s TileShape) int {
	switch s {
	case ShapeFull:
		return i.Full
	case ShapeOuterBoundary:
		return i.OuterBoundary
	case ShapeEL:
		return i.EL
	}
	return 0
}

// Total returns the total number of tiles across all shapes.
func (i Inventory) Total() int { return i.Full + i.OuterBoundary + i.EL }

// Targets maps a bush color to the exact number of bushes of that color
// that must remain visible in a solution. Colors absent from the map are
// unconstrained.
type Targets map[landscape.Color]int
