// Package io reads and writes tile placement problem files.
//
// # Overview
//
// This package turns problem files into validated [csp.Problem] instances and
// writes problems back out for sharing and round-tripping. Two formats are
// supported:
//
//   - The classic plain-text format (see below)
//   - A TOML manifest format
//
// # Text Format
//
// The text format has three sections, in order. Blank lines and lines
// starting with '#' are ignored anywhere in the file.
//
// First the landscape: one line per grid row, cells separated by whitespace,
// 0 for an empty cell and 1..4 for a bush color:
//
//	1 0 0 2
//	0 3 0 0
//	0 0 1 0
//	4 0 0 0
//
// Short rows are padded with empty cells to the widest row.
//
// Then the tile inventory, a single line in curly braces. Missing shape names
// default to zero:
//
//	{FULL_BLOCK=1, OUTER_BOUNDARY=2, EL_SHAPE=3}
//
// Finally the visibility targets, one "color:count" line per targeted color:
//
//	1:2
//	3:1
//
// # TOML Format
//
// The TOML manifest carries the same data with named fields:
//
//	[landscape]
//	rows = [
//	  "1 0 0 2",
//	  "0 3 0 0",
//	  "0 0 1 0",
//	  "4 0 0 0",
//	]
//
//	[inventory]
//	full_block = 1
//	outer_boundary = 2
//	el_shape = 3
//
//	[targets]
//	1 = 2
//	3 = 1
//
// # Import
//
// Use [Import] to read a file by path, choosing the format from the file
// extension (.toml for TOML, anything else for text), or [ReadText] and
// [ReadTOML] to read a specific format from any io.Reader:
//
//	p, err := io.Import("garden.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// All import functions run full problem validation: the returned problem has
// passed the same checks as a direct [csp.NewProblem] call, so parse errors
// and configuration errors both surface here, before any solving starts.
//
// # Export
//
// Use [ExportTOML] to write a problem to a TOML file, or [WriteTOML] to write
// to any io.Writer. Exported manifests re-import identically.
//
// [csp.Problem]: github.com/tilegarden/tilegarden/pkg/csp.Problem
// [csp.NewProblem]: github.com/tilegarden/tilegarden/pkg/csp.NewProblem
package io
