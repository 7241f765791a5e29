package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tilegarden/tilegarden/pkg/cache"
	"github.com/tilegarden/tilegarden/pkg/csp"
)

// solvableText has a single footprint where only the outer boundary tile
// leaves exactly four color-1 bushes visible.
const solvableText = `# one footprint, one outer boundary
1 0 0 1
0 1 1 0
0 1 1 0
0 0 0 0
{OUTER_BOUNDARY=1}
1:4
`

// unsolvableText has the same landscape but no tiles, so the six bushes can
// never be reduced to four.
const unsolvableText = `1 0 0 1
0 1 1 0
0 1 1 0
0 0 0 0
{}
1:4
`

const solvableTOML = `[landscape]
rows = ["1 0 0 1", "0 1 1 0", "0 1 1 0", "0 0 0 0"]

[inventory]
outer_boundary = 1

[targets]
"1" = 4
`

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestRunner() *Runner {
	return NewRunner(cache.NewMemoryCache(), nil, testLogger())
}

func TestExecuteSolves(t *testing.T) {
	r := newTestRunner()
	defer r.Close()

	res, err := r.Execute(context.Background(), Options{Input: solvableText})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Solve.Outcome != csp.OutcomeSolved {
		t.Fatalf("outcome = %v, want solved", res.Solve.Outcome)
	}
	if res.ProblemHash == "" {
		t.Error("problem hash is empty")
	}
	if res.CacheInfo.SolveHit || res.CacheInfo.ArtifactHit {
		t.Errorf("first run should not hit the cache: %+v", res.CacheInfo)
	}
	if !strings.Contains(string(res.Artifact), "Outcome: solved") {
		t.Errorf("artifact missing outcome:\n%s", res.Artifact)
	}
}

func TestExecuteCachesSolveAndArtifact(t *testing.T) {
	r := newTestRunner()
	defer r.Close()
	opts := Options{Input: solvableText}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	if !second.CacheInfo.SolveHit {
		t.Error("second run should hit the solve cache")
	}
	if !second.CacheInfo.ArtifactHit {
		t.Error("second run should hit the artifact cache")
	}
	if string(first.Artifact) != string(second.Artifact) {
		t.Error("cached artifact differs from rendered artifact")
	}
	if second.Solve.Stats.Nodes != first.Solve.Stats.Nodes {
		t.Errorf("cached stats differ: %d vs %d nodes",
			second.Solve.Stats.Nodes, first.Solve.Stats.Nodes)
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	r := newTestRunner()
	defer r.Close()

	if _, err := r.Execute(context.Background(), Options{Input: solvableText}); err != nil {
		t.Fatalf("warm-up Execute: %v", err)
	}
	res, err := r.Execute(context.Background(), Options{Input: solvableText, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}

	if res.CacheInfo.SolveHit || res.CacheInfo.ArtifactHit {
		t.Errorf("refresh run should not hit the cache: %+v", res.CacheInfo)
	}
}

func TestExecuteFromFile(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		file    string
		content string
	}{
		{"text", "garden.txt", solvableText},
		{"toml", "garden.toml", solvableTOML},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}

			r := newTestRunner()
			defer r.Close()
			res, err := r.Execute(context.Background(), Options{Path: path})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if res.Solve.Outcome != csp.OutcomeSolved {
				t.Errorf("outcome = %v, want solved", res.Solve.Outcome)
			}
		})
	}
}

func TestExecuteMissingFile(t *testing.T) {
	r := newTestRunner()
	defer r.Close()

	_, err := r.Execute(context.Background(), Options{Path: filepath.Join(t.TempDir(), "nope.txt")})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExecuteNoSolution(t *testing.T) {
	r := newTestRunner()
	defer r.Close()

	res, err := r.Execute(context.Background(), Options{Input: unsolvableText})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Solve.Outcome != csp.OutcomeExhausted {
		t.Fatalf("outcome = %v, want no-solution", res.Solve.Outcome)
	}
	if res.Solve.Solution != nil {
		t.Error("unsatisfiable run carries a solution")
	}
	if !strings.Contains(string(res.Artifact), "no-solution") {
		t.Errorf("artifact missing outcome:\n%s", res.Artifact)
	}
}

func TestExecuteBudgetAbortIsCached(t *testing.T) {
	// An 8x8 empty landscape has four variables; a budget of one assignment
	// aborts the search. The abort is a function of the budget, so the rerun
	// may serve it from cache.
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		sb.WriteString("0 0 0 0 0 0 0 0\n")
	}
	sb.WriteString("{FULL_BLOCK=4}\n")
	input := sb.String()

	r := newTestRunner()
	defer r.Close()
	opts := Options{Input: input, NodeBudget: 1}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.Solve.Outcome != csp.OutcomeAborted {
		t.Fatalf("outcome = %v, want aborted", first.Solve.Outcome)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.SolveHit {
		t.Error("budget-bound abort should be served from cache")
	}
}

func TestOptionsValidation(t *testing.T) {
	cases := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"no input", Options{}, true},
		{"path and input", Options{Path: "a.txt", Input: "x"}, true},
		{"bad format", Options{Input: "x", Format: "xml"}, true},
		{"defaults", Options{Input: "x"}, false},
		{"explicit format", Options{Input: "x", Format: FormatJSON}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.ValidateAndSetDefaults()
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil {
				return
			}
			if tc.opts.Format == "" {
				t.Error("format default not applied")
			}
			if tc.opts.NodeBudget != DefaultNodeBudget && tc.opts.NodeBudget == 0 {
				t.Error("node budget default not applied")
			}
		})
	}
}

func TestEffectiveNodeBudget(t *testing.T) {
	cases := []struct {
		in   int64
		want int64
	}{
		{0, DefaultNodeBudget},
		{-1, 0},
		{100, 100},
	}
	for _, tc := range cases {
		o := Options{NodeBudget: tc.in}
		if got := o.EffectiveNodeBudget(); got != tc.want {
			t.Errorf("EffectiveNodeBudget(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRenderFormats(t *testing.T) {
	r := newTestRunner()
	defer r.Close()

	base, err := r.Execute(context.Background(), Options{Input: solvableText})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	cases := []struct {
		format string
		want   string
	}{
		{FormatText, "Outer Boundary: 1/1 used"},
		{FormatGrid, "O\n"},
		{FormatJSON, `"outcome": "solved"`},
		{FormatPretty, "Tile Usage:"},
	}
	for _, tc := range cases {
		t.Run(tc.format, func(t *testing.T) {
			artifact, err := r.Render(context.Background(), base.Problem, base.Solve, Options{
				Input:  solvableText,
				Format: tc.format,
			})
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !strings.Contains(string(artifact), tc.want) {
				t.Errorf("format %s missing %q:\n%s", tc.format, tc.want, artifact)
			}
		})
	}
}

func TestSolveRecordRoundTrip(t *testing.T) {
	r := newTestRunner()
	defer r.Close()
	res, err := r.Execute(context.Background(), Options{Input: solvableText})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	data, err := encodeResult(res.Solve)
	if err != nil {
		t.Fatalf("encodeResult: %v", err)
	}
	back, err := decodeResult(data)
	if err != nil {
		t.Fatalf("decodeResult: %v", err)
	}
	if back.Outcome != res.Solve.Outcome {
		t.Errorf("outcome = %v, want %v", back.Outcome, res.Solve.Outcome)
	}
	if back.Solution == nil || len(back.Solution.Values) != len(res.Solve.Solution.Values) {
		t.Errorf("solution not restored: %+v", back.Solution)
	}
	if back.Stats != res.Solve.Stats {
		t.Errorf("stats = %+v, want %+v", back.Stats, res.Solve.Stats)
	}
}

func TestDecodeResultRejectsGarbage(t *testing.T) {
	if _, err := decodeResult([]byte("{not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
	// Solved without a solution is an inconsistent record.
	if _, err := decodeResult([]byte(`{"outcome":0,"stats":{}}`)); err == nil {
		t.Error("expected error for solved record without solution")
	}
}
