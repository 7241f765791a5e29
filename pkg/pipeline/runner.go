package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tilegarden/tilegarden/pkg/cache"
	"github.com/tilegarden/tilegarden/pkg/csp"
	apperrors "github.com/tilegarden/tilegarden/pkg/errors"
	tileio "github.com/tilegarden/tilegarden/pkg/io"
	"github.com/tilegarden/tilegarden/pkg/observability"
	"github.com/tilegarden/tilegarden/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → solve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	input, err := r.readInput(opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	p, err := decodeProblem(input, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Problem = p
	result.ProblemHash = cache.Hash(input)
	result.Stats.ParseTime = time.Since(parseStart)

	r.Logger.Info("parsed problem",
		"grid", fmt.Sprintf("%dx%d", p.GridHeight(), p.GridWidth()),
		"placements", p.NumPlacements(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Solve
	solveStart := time.Now()
	solveRes, solveHit, err := r.SolveWithCacheInfo(ctx, p, result.ProblemHash, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Solve = solveRes
	result.Stats.SolveTime = time.Since(solveStart)
	result.CacheInfo.SolveHit = solveHit

	r.Logger.Info("search finished",
		"outcome", solveRes.Outcome,
		"nodes", solveRes.Stats.Nodes,
		"cached", solveHit,
		"duration", result.Stats.SolveTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifact, renderHit, err := r.RenderWithCacheInfo(ctx, p, solveRes, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.ArtifactHit = renderHit

	r.Logger.Info("rendered output",
		"format", opts.Format,
		"bytes", len(artifact),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseProblem decodes the problem named by opts without solving it.
func (r *Runner) ParseProblem(opts Options) (*csp.Problem, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}
	input, err := r.readInput(opts)
	if err != nil {
		return nil, err
	}
	return decodeProblem(input, opts)
}

// SolveWithCacheInfo runs the search with caching and returns cache hit info.
//
// Only terminal outcomes (solved, no-solution) and budget-bound aborts are
// cached: they are pure functions of the problem and the node budget. A run
// aborted by context cancellation proves nothing and is never stored.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, p *csp.Problem, problemHash string, opts Options) (csp.Result, bool, error) {
	opts.SetSolveDefaults()
	r.applyLogger(&opts)

	cacheKey := r.Keyer.SolveKey(problemHash, opts.SolveKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if res, err := decodeResult(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "solve")
				return res, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "solve")
	}

	solver := csp.NewSolver(p, csp.Options{
		Logger:        opts.Logger,
		NodeBudget:    opts.EffectiveNodeBudget(),
		ProgressEvery: opts.ProgressEvery,
		OnProgress:    opts.OnProgress,
	})
	res := solver.Solve(ctx)

	if res.Outcome != csp.OutcomeAborted || ctx.Err() == nil {
		if data, err := encodeResult(res); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSolve)
			observability.Cache().OnCacheSet(ctx, "solve", len(data))
		}
	}

	return res, false, nil
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Solve(ctx context.Context, p *csp.Problem, problemHash string, opts Options) (csp.Result, error) {
	res, _, err := r.SolveWithCacheInfo(ctx, p, problemHash, opts)
	return res, err
}

// RenderWithCacheInfo generates the artifact with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p *csp.Problem, res csp.Result, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// The artifact key hashes the solve result, so distinct outcomes of the
	// same problem (different budgets) cache separately.
	resData, err := encodeResult(res)
	if err != nil {
		return nil, false, fmt.Errorf("serialize result for cache key: %w", err)
	}
	cacheKey := r.Keyer.ArtifactKey(cache.Hash(resData), opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	artifact, err := renderArtifact(p, res, opts.Format)
	if err != nil {
		return nil, false, err
	}

	_ = r.Cache.Set(ctx, cacheKey, artifact, cache.TTLArtifact)
	observability.Cache().OnCacheSet(ctx, "artifact", len(artifact))

	return artifact, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, p *csp.Problem, res csp.Result, opts Options) ([]byte, error) {
	artifact, _, err := r.RenderWithCacheInfo(ctx, p, res, opts)
	return artifact, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// readInput loads the raw problem bytes from the path or the inline input.
func (r *Runner) readInput(opts Options) ([]byte, error) {
	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read %s", opts.Path)
		}
		return data, nil
	}
	return []byte(opts.Input), nil
}

// decodeProblem parses the raw bytes as a TOML manifest or plain text.
func decodeProblem(input []byte, opts Options) (*csp.Problem, error) {
	if opts.TOML || strings.EqualFold(filepath.Ext(opts.Path), ".toml") {
		return tileio.ReadTOML(bytes.NewReader(input))
	}
	return tileio.ReadText(bytes.NewReader(input))
}

// renderArtifact dispatches on the output format.
func renderArtifact(p *csp.Problem, res csp.Result, format string) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(render.Text(p, res)), nil
	case FormatGrid:
		if res.Solution == nil {
			return []byte(res.Outcome.String() + "\n"), nil
		}
		return []byte(render.Grid(p, res.Solution) + "\n"), nil
	case FormatJSON:
		return render.JSON(p, res)
	case FormatPretty:
		return []byte(render.Pretty(p, res)), nil
	}
	return nil, apperrors.New(apperrors.ErrCodeUnsupported, "unknown format %q", format)
}

// solveRecord is the cache payload for a solve result.
type solveRecord struct {
	Outcome  csp.Outcome   `json:"outcome"`
	Solution *csp.Solution `json:"solution,omitempty"`
	Stats    csp.Stats     `json:"stats"`
}

func encodeResult(res csp.Result) ([]byte, error) {
	return json.Marshal(solveRecord{
		Outcome:  res.Outcome,
		Solution: res.Solution,
		Stats:    res.Stats,
	})
}

func decodeResult(data []byte) (csp.Result, error) {
	var rec solveRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return csp.Result{}, err
	}
	if rec.Outcome == csp.OutcomeSolved && rec.Solution == nil {
		return csp.Result{}, fmt.Errorf("cached result claims solved without a solution")
	}
	return csp.Result{
		Outcome:  rec.Outcome,
		Solution: rec.Solution,
		Stats:    rec.Stats,
	}, nil
}
