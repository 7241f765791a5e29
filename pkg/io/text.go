package io

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tilegarden/tilegarden/pkg/csp"
	apperrors "github.com/tilegarden/tilegarden/pkg/errors"
	"github.com/tilegarden/tilegarden/pkg/landscape"
)

// ReadText decodes a plain-text problem file from r.
//
// The returned problem is fully validated; see the package documentation for
// the format. ReadText does not close r.
func ReadText(r io.Reader) (*csp.Problem, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidProblem, err, "read problem")
	}

	// Landscape rows run until the inventory line.
	var rows [][]landscape.Color
	i := 0
	for ; i < len(lines) && !strings.HasPrefix(lines[i], "{"); i++ {
		row, err := parseRow(lines[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidLandscape, "no landscape rows found")
	}
	padRows(rows)

	var inv csp.Inventory
	if i < len(lines) {
		parsed, err := parseInventory(lines[i])
		if err != nil {
			return nil, err
		}
		inv = parsed
		i++
	}

	targets := make(csp.Targets)
	for ; i < len(lines); i++ {
		color, count, err := parseTarget(lines[i])
		if err != nil {
			return nil, err
		}
		targets[color] = count
	}

	return buildProblem(rows, inv, targets)
}

// ImportText reads a plain-text problem file at path.
func ImportText(path string) (*csp.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadText(f)
}

// Import reads a problem file at path, choosing the format from the file
// extension: .toml is decoded as a TOML manifest, everything else as the
// plain-text format.
func Import(path string) (*csp.Problem, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ImportTOML(path)
	}
	return ImportText(path)
}

// parseRow parses one whitespace-separated landscape row.
func parseRow(line string) ([]landscape.Color, error) {
	fields := strings.Fields(line)
	row := make([]landscape.Color, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || landscape.Color(n) > landscape.MaxColor {
			return nil, apperrors.New(apperrors.ErrCodeInvalidLandscape,
				"invalid cell %q in row %q", f, line)
		}
		row[i] = landscape.Color(n)
	}
	return row, nil
}

// padRows extends short rows with empty cells to the widest row.
func padRows(rows [][]landscape.Color) {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		for len(row) < width {
			row = append(row, landscape.None)
		}
		rows[i] = row
	}
}

// parseInventory parses the "{FULL_BLOCK=x, OUTER_BOUNDARY=y, EL_SHAPE=z}"
// line. Missing names default to zero; unknown names are rejected.
func parseInventory(line string) (csp.Inventory, error) {
	var inv csp.Inventory
	body := strings.TrimSuffix(strings.TrimPrefix(line, "{"), "}")
	if strings.TrimSpace(body) == "" {
		return inv, nil
	}
	for _, item := range strings.Split(body, ",") {
		name, value, ok := strings.Cut(item, "=")
		if !ok {
			return inv, apperrors.New(apperrors.ErrCodeInvalidInventory,
				"malformed inventory entry %q", strings.TrimSpace(item))
		}
		count, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return inv, apperrors.New(apperrors.ErrCodeInvalidInventory,
				"invalid count in inventory entry %q", strings.TrimSpace(item))
		}
		switch strings.TrimSpace(name) {
		case csp.ShapeFull.String():
			inv.Full = count
		case csp.ShapeOuterBoundary.String():
			inv.OuterBoundary = count
		case csp.ShapeEL.String():
			inv.EL = count
		default:
			return inv, apperrors.New(apperrors.ErrCodeInvalidInventory,
				"unknown tile shape %q", strings.TrimSpace(name))
		}
	}
	return inv, nil
}

// parseTarget parses one "color:count" visibility target line.
func parseTarget(line string) (landscape.Color, int, error) {
	left, right, ok := strings.Cut(line, ":")
	if !ok {
		return 0, 0, apperrors.New(apperrors.ErrCodeInvalidTarget,
			"malformed target line %q", line)
	}
	color, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil || color < 1 || color > int(landscape.MaxColor) {
		return 0, 0, apperrors.New(apperrors.ErrCodeInvalidTarget,
			"invalid color in target line %q", line)
	}
	count, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return 0, 0, apperrors.New(apperrors.ErrCodeInvalidTarget,
			"invalid count in target line %q", line)
	}
	return landscape.Color(color), count, nil
}

// buildProblem assembles and validates the parsed pieces.
func buildProblem(rows [][]landscape.Color, inv csp.Inventory, targets csp.Targets) (*csp.Problem, error) {
	land, err := landscape.New(rows)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidLandscape, err, "build landscape")
	}
	p, err := csp.NewProblem(land, inv, targets)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidProblem, err, "validate problem")
	}
	return p, nil
}
