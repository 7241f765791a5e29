package io

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tilegarden/tilegarden/pkg/csp"
	apperrors "github.com/tilegarden/tilegarden/pkg/errors"
	"github.com/tilegarden/tilegarden/pkg/landscape"
)

// tomlProblem mirrors the TOML manifest layout. Target keys are color
// numbers, which TOML represents as strings.
type tomlProblem struct {
	Landscape tomlLandscape  `toml:"landscape"`
	Inventory tomlInventory  `toml:"inventory"`
	Targets   map[string]int `toml:"targets"`
}

type tomlLandscape struct {
	Rows []string `toml:"rows"`
}

type tomlInventory struct {
	FullBlock     int `toml:"full_block"`
	OuterBoundary int `toml:"outer_boundary"`
	ELShape       int `toml:"el_shape"`
}

// ReadTOML decodes a TOML problem manifest from r.
//
// The returned problem is fully validated; see the package documentation for
// the format. ReadTOML does not close r.
func ReadTOML(r io.Reader) (*csp.Problem, error) {
	var doc tomlProblem
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidProblem, err, "decode manifest")
	}

	if len(doc.Landscape.Rows) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidLandscape, "no landscape rows found")
	}
	rows := make([][]landscape.Color, len(doc.Landscape.Rows))
	for i, line := range doc.Landscape.Rows {
		row, err := parseRow(line)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}
	padRows(rows)

	inv := csp.Inventory{
		Full:          doc.Inventory.FullBlock,
		OuterBoundary: doc.Inventory.OuterBoundary,
		EL:            doc.Inventory.ELShape,
	}

	targets := make(csp.Targets, len(doc.Targets))
	for key, count := range doc.Targets {
		color, err := strconv.Atoi(key)
		if err != nil || color < 1 || color > int(landscape.MaxColor) {
			return nil, apperrors.New(apperrors.ErrCodeInvalidTarget,
				"invalid target color %q", key)
		}
		targets[landscape.Color(color)] = count
	}

	return buildProblem(rows, inv, targets)
}

// ImportTOML reads a TOML problem manifest at path.
func ImportTOML(path string) (*csp.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadTOML(f)
}

// WriteTOML encodes a problem as a TOML manifest and writes it to w.
// The output re-imports identically with [ReadTOML].
func WriteTOML(p *csp.Problem, w io.Writer) error {
	land := p.Landscape()
	rows := make([]string, land.Height())
	for r := 0; r < land.Height(); r++ {
		var sb strings.Builder
		for c := 0; c < land.Width(); c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(int(land.At(r, c))))
		}
		rows[r] = sb.String()
	}

	inv := p.Inventory()
	doc := tomlProblem{
		Landscape: tomlLandscape{Rows: rows},
		Inventory: tomlInventory{
			FullBlock:     inv.Full,
			OuterBoundary: inv.OuterBoundary,
			ELShape:       inv.EL,
		},
		Targets: make(map[string]int),
	}
	for c, count := range p.Targets() {
		doc.Targets[strconv.Itoa(int(c))] = count
	}

	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return nil
}

// ExportTOML writes a problem to a TOML manifest file at path.
// This is a convenience wrapper around [WriteTOML] for file-based output.
func ExportTOML(p *csp.Problem, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTOML(p, f)
}
