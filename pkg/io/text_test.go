package io

import (
	"strings"
	"testing"

	"github.com/tilegarden/tilegarden/pkg/csp"
	apperrors "github.com/tilegarden/tilegarden/pkg/errors"
	"github.com/tilegarden/tilegarden/pkg/landscape"
)

const sampleText = `
# A small garden: one footprint, six bushes.
1 0 0 2
0 1 1 0
0 1 1 0
2 0 0 0

{FULL_BLOCK=1, OUTER_BOUNDARY=2, EL_SHAPE=3}

1:4
2:0
`

func TestReadText(t *testing.T) {
	p, err := ReadText(strings.NewReader(sampleText))
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}

	land := p.Landscape()
	if land.Height() != 4 || land.Width() != 4 {
		t.Fatalf("landscape = %dx%d, want 4x4", land.Height(), land.Width())
	}
	if got := land.At(0, 0); got != 1 {
		t.Errorf("At(0,0) = %d, want 1", got)
	}
	if got := land.At(0, 3); got != 2 {
		t.Errorf("At(0,3) = %d, want 2", got)
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

func TestReadTextPadsShortRows(t *testing.T) {
	input := `
1 0 0 2
0 1
0 1 1 0
2
{FULL_BLOCK=1}
`
	p, err := ReadText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if p.Landscape().Width() != 4 {
		t.Errorf("width = %d after padding, want 4", p.Landscape().Width())
	}
	if got := p.Landscape().At(1, 3); got != landscape.None {
		t.Errorf("padded cell = %d, want empty", got)
	}
}

func TestReadTextDefaultsMissingShapes(t *testing.T) {
	input := `
0 0 0 0
0 0 0 0
0 0 0 0
0 0 0 0
{EL_SHAPE=2}
`
	p, err := ReadText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	want := csp.Inventory{EL: 2}
	if p.Inventory() != want {
		t.Errorf("inventory = %+v, want %+v", p.Inventory(), want)
	}
}

func TestReadTextErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode apperrors.Code
	}{
		{
			name:     "empty file",
			input:    "# only comments\n",
			wantCode: apperrors.ErrCodeInvalidLandscape,
		},
		{
			name:     "non-numeric cell",
			input:    "1 x 0 0\n{FULL_BLOCK=1}\n",
			wantCode: apperrors.ErrCodeInvalidLandscape,
		},
		{
			name:     "color out of range",
			input:    "1 9 0 0\n{FULL_BLOCK=1}\n",
			wantCode: apperrors.ErrCodeInvalidLandscape,
		},
		{
			name:     "unknown shape name",
			input:    "0 0 0 0\n0 0 0 0\n0 0 0 0\n0 0 0 0\n{CORNER=1}\n",
			wantCode: apperrors.ErrCodeInvalidInventory,
		},
		{
			name:     "malformed inventory entry",
			input:    "0 0 0 0\n0 0 0 0\n0 0 0 0\n0 0 0 0\n{FULL_BLOCK}\n",
			wantCode: apperrors.ErrCodeInvalidInventory,
		},
		{
			name:     "malformed target",
			input:    "1 0 0 0\n0 0 0 0\n0 0 0 0\n0 0 0 0\n{FULL_BLOCK=1}\n1=4\n",
			wantCode: apperrors.ErrCodeInvalidTarget,
		},
		{
			name:     "target color out of range",
			input:    "1 0 0 0\n0 0 0 0\n0 0 0 0\n0 0 0 0\n{FULL_BLOCK=1}\n9:4\n",
			wantCode: apperrors.ErrCodeInvalidTarget,
		},
		{
			name:     "dimensions not tileable",
			input:    "1 0\n0 1\n{FULL_BLOCK=1}\n",
			wantCode: apperrors.ErrCodeInvalidProblem,
		},
		{
			name:     "target exceeds bushes",
			input:    "1 0 0 0\n0 0 0 0\n0 0 0 0\n0 0 0 0\n{FULL_BLOCK=1}\n1:5\n",
			wantCode: apperrors.ErrCodeInvalidProblem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadText(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadText succeeded, want error")
			}
			if got := apperrors.GetCode(err); got != tt.wantCode {
				t.Errorf("error code = %s, want %s (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestImportTextMissingFile(t *testing.T) {
	_, err := ImportText("does-not-exist.txt")
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}
