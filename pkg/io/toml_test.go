package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tilegarden/tilegarden/pkg/csp"
	apperrors "github.com/tilegarden/tilegarden/pkg/errors"
)

const sampleTOML = `
[landscape]
rows = [
  "1 0 0 2",
  "0 1 1 0",
  "0 1 1 0",
  "2 0 0 0",
]

[inventory]
full_block = 1
outer_boundary = 2
el_shape = 3

[targets]
1 = 4
2 = 0
`

func TestReadTOML(t *testing.T) {
	p, err := ReadTOML(strings.NewReader(sampleTOML))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}

	if p.Landscape().Height() != 4 || p.Landscape().Width() != 4 {
		t.Fatalf("landscape = %dx%d, want 4x4",
			p.Landscape().Height(), p.Landscape().Width())
	}
	want := csp.Inventory{Full: 1, OuterBoundary: 2, EL: 3}
	if p.Inventory() != want {
		t.Errorf("inventory = %+v, want %+v", p.Inventory(), want)
	}
	targets := p.Targets()
	if targets[1] != 4 || targets[2] != 0 {
		t.Errorf("targets = %v, want map[1:4 2:0]", targets)
	}
}

func TestReadTOMLErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode apperrors.Code
	}{
		{
			name:     "not toml",
			input:    "{FULL_BLOCK=1}",
			wantCode: apperrors.ErrCodeInvalidProblem,
		},
		{
			name:     "no rows",
			input:    "[inventory]\nfull_block = 1\n",
			wantCode: apperrors.ErrCodeInvalidLandscape,
		},
		{
			name:     "bad cell",
			input:    "[landscape]\nrows = [\"1 x\"]\n",
			wantCode: apperrors.ErrCodeInvalidLandscape,
		},
		{
			name:     "bad target color",
			input:    "[landscape]\nrows = [\"1 0 0 0\", \"0 0 0 0\", \"0 0 0 0\", \"0 0 0 0\"]\n[targets]\nred = 1\n",
			wantCode: apperrors.ErrCodeInvalidTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTOML(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadTOML succeeded, want error")
			}
			if got := apperrors.GetCode(err); got != tt.wantCode {
				t.Errorf("error code = %s, want %s (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	orig, err := ReadTOML(strings.NewReader(sampleTOML))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteTOML(orig, &buf); err != nil {
		t.Fatalf("WriteTOML: %v", err)
	}

	again, err := ReadTOML(&buf)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}

	if again.Inventory() != orig.Inventory() {
		t.Errorf("inventory changed in round trip: %+v vs %+v",
			again.Inventory(), orig.Inventory())
	}
	origTargets, againTargets := orig.Targets(), again.Targets()
	if len(againTargets) != len(origTargets) {
		t.Fatalf("targets changed in round trip: %v vs %v", againTargets, origTargets)
	}
	for c, n := range origTargets {
		if againTargets[c] != n {
			t.Errorf("target for color %d changed: %d vs %d", c, againTargets[c], n)
		}
	}
	land, landAgain := orig.Landscape(), again.Landscape()
	for r := 0; r < land.Height(); r++ {
		for c := 0; c < land.Width(); c++ {
			if land.At(r, c) != landAgain.At(r, c) {
				t.Errorf("cell (%d,%d) changed: %d vs %d",
					r, c, landAgain.At(r, c), land.At(r, c))
			}
		}
	}
}

func TestImportByExtension(t *testing.T) {
	// Import dispatches on extension; a missing .toml file must fail
	// through the TOML path, anything else through the text path.
	if _, err := Import("missing.toml"); !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("toml import error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := Import("missing.txt"); !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("text import error = %v, want FILE_NOT_FOUND", err)
	}
}
