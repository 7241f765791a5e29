// Package render turns solve results into presentable artifacts.
//
// # Formats
//
//   - [Grid]: compact symbolic grid, one letter per placement
//   - [Visual]: cell-level drawing of tiles over the landscape
//   - [Text]: full plain-text report (visual + grid + usage + visibility)
//   - [Pretty]: ANSI-colored variant of the report for terminals
//   - [JSON]: machine-readable artifact for the API and for caching
//
// The symbolic grid uses one letter per footprint: F for a full block, O for
// an outer boundary, L for any el orientation, and '.' for an untiled
// footprint.
//
// In the visual drawing every landscape cell is one character: '█' where a
// tile covers the cell, the bush's color digit where a bush stays visible,
// and '·' for an uncovered empty cell. Footprints are separated by a space
// so tile boundaries stay readable.
//
// For the constraint graph itself (placements and their coupling arcs), see
// the constraintgraph subpackage.
package render
